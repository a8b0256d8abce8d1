// Package io provides JSON import and export for radial family-tree layouts.
//
// # Overview
//
// Layouts are computed by an external layout engine. This package reads
// and writes the document such an engine hands over, so the renderer, the
// CLI and the HTTP service all share one format.
//
// # JSON Format
//
//	{
//	  "person_radius": 20,
//	  "root": "ada",
//	  "persons": [
//	    {"id": "ada", "first_name": "Ada", "last_name": "Lovelace",
//	     "birth": "1815", "death": "1852", "deceased": true, "gender": "female",
//	     "position": {"x": 0, "y": 0}, "rotation": 0}
//	  ],
//	  "scaffolding": [
//	    {"type": "line", "from": {"x": 0, "y": 0}, "to": {"x": 100, "y": 0}},
//	    {"type": "arc", "from": {"x": 100, "y": 0}, "to": {"x": 0, "y": 100},
//	     "r": 100, "from_angle": 0, "to_angle": 1.5708},
//	    {"type": "bezier", "from": {"x": 0, "y": 100}, "to": {"x": 0, "y": 200},
//	     "cp": {"x": 40, "y": 150}}
//	  ]
//	}
//
// # Person Fields
//
// Required:
//   - id: Unique identifier
//
// Optional:
//   - first_name, last_name, birth, death: Label text
//   - gender: "male", "female" or anything else for other
//   - deceased, child: Classification flags
//   - position: Marker centre in layout coordinates
//   - rotation: Branch direction in radians
//
// Persons without a position are not drawn. A person with a position but
// no rotation is imported as-is; rendering it fails with
// MISSING_PLACEMENT.
//
// # Validation
//
// [ReadJSON] rejects duplicate or malformed person IDs, a root that names
// no positioned person, unknown scaffolding types, non-finite numbers and
// a non-positive person radius. All failures carry the INVALID_LAYOUT code.
//
// # Round Trip
//
// [WriteJSON] writes positioned persons in layout order followed by the
// scaffolding, so import, export and re-import yields an identical layout.
package io
