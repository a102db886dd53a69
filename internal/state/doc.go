// Package state defines the application state persisted by kept.
//
// The state file (state.json) is a single JSON blob:
//
//	{
//	  "todos": [
//	    {
//	      "id": "a1b2...",
//	      "title": "Buy milk",
//	      "completed": false,
//	      "categoryId": "uncategorized",
//	      "createdAt": 1700000000000,
//	      "updatedAt": 1700000000000
//	    }
//	  ],
//	  "categories": [
//	    {
//	      "id": "uncategorized",
//	      "name": "Uncategorized",
//	      "createdAt": 1700000000000,
//	      "updatedAt": 1700000000000
//	    }
//	  ],
//	  "filter": { "status": "all", "categoryId": "all", "search": "" },
//	  "ui": { "editingTodoId": "" },
//	  "meta": { "schemaVersion": 1 }
//	}
//
// Timestamps are Unix milliseconds. The schemaVersion integer invalidates
// stored state across incompatible format changes: a blob with a different
// version is discarded, never migrated.
//
// # Sentinel category
//
// The "uncategorized" category always exists. It cannot be deleted or
// renamed, and it is the default target for todos whose category goes away.
package state
