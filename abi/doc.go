// Package abi parses contract ABI documents into type descriptor trees.
//
// An ABI document is JSON naming each function with an ordered parameter
// list and a return type, plus the struct and enum definitions those
// type strings reference:
//
//	{
//	  "types": [
//	    {"name": "User", "kind": "struct",
//	     "fields": [{"name": "id", "type": "u64"}, {"name": "balance", "type": "u64"}]},
//	    {"name": "Status", "kind": "enum",
//	     "variants": [{"name": "Inactive", "type": "()"}, {"name": "Active", "type": "bool"}]}
//	  ],
//	  "functions": [
//	    {"name": "activate", "inputs": [{"name": "who", "type": "struct User"}], "output": "enum Status"}
//	  ]
//	}
//
// Type strings follow the grammar: "u64", "b256", "str[3]", "[u64; 3]",
// "(u64, bool)", "Vec<u64>", "bytes", "raw slice", "struct User",
// "enum Status".
//
// Documents are resolved once at load time; the resulting descriptor trees
// are immutable and safely shared across concurrent pipeline invocations.
// Malformed input is an external-input error (abi phase), never a codec
// defect.
package abi
