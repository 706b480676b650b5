// Package extract is the boundary to the external replay tooling. The
// pipeline never parses the replay format itself: it asks an [Extractor] for
// match metadata and a [ChatStripper] to rewrite a replay without chat.
//
// The shipped implementations run external commands. The extractor prints a
// single JSON document:
//
//	{
//	  "duration_seconds": 930,
//	  "players": [
//	    {"name": "Lucas", "result": "Win",  "race": "Zerg",   "peak_minerals": 2500},
//	    {"name": "Foe",   "result": "Loss", "race": "Terran", "peak_minerals": 1800}
//	  ]
//	}
//
// and the subject player is resolved here, by name, so the external tool
// needs no knowledge of who is asking.
package extract
