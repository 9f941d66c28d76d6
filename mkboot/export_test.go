package mkboot

// Exported aliases for testing internal functions from
// mkboot_test package.

// PlanEntriesForTest exposes planEntries.
var PlanEntriesForTest = planEntries

// SingleEntryForTest exposes singleEntry.
var SingleEntryForTest = singleEntry

// BuildEntryForTest exposes buildEntry.
var BuildEntryForTest = buildEntry

// TrimExtForTest exposes trimExt.
var TrimExtForTest = trimExt
