// Package ide stores the IDE-facing facts a checking pass discovers (macro
// calls, autocomplete candidates, missing match arms, ellipsis expansions)
// and renders them as informational diagnostics.
//
// A pass records into an IDEInfo keyed by source span. Once the pass is
// done the store is frozen and handed to consumers: golden tests render
// every entry with Render, the cursor query keeps only the entries whose
// span contains the cursor.
package ide
