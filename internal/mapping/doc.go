// Package mapping parses and validates the field mapping file that tells the
// transformer how to build destination records from report entries.
//
// The mapping file is a single JSON object (YAML is accepted too). Each key
// is a destination field; its value decides the rule kind:
//
//	{
//	  "email": "Work_Email",                      // direct
//	  "location": {"city": "City", "country": "Country"},   // structured
//	  "teams": [{"__sourceField": "Teams", "id": "Team_ID", "name": "Team_Name"}],
//	  "linkedinUrl": "LinkedIn_Profile",          // social link
//	  "additionalFields": ["Cost_Center", "Skills"]
//	}
//
// # Rule kinds
//
//   - Direct: a string naming the report field to copy verbatim.
//   - Structured: an object of destination sub-key to report field; produces
//     a nested object with exactly those sub-keys.
//   - Repeated group: a one-element list holding a descriptor object. The
//     reserved "__sourceField" key names a report field that holds a list;
//     every other non "__" key maps a destination sub-key to a key of the
//     list elements. Produces one nested object per list element.
//   - Social link: any key ending in "Url" except "photoUrl" and
//     "profileUrl". The network is the key without the suffix, lower-cased.
//
// The "additionalFields" key is not a rule: it lists report fields that are
// exported as free-form custom attributes.
//
// Shapes are checked when the file is parsed; a Spec that parsed is safe to
// use for people mode. Teams mode additionally needs the "teams" descriptor
// with "id" and "name" and a direct "email" rule, which TeamsRule and
// EmailField check on first use.
package mapping
