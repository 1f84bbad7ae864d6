// Package state defines the key/value contract shared by search UI
// components (the "query state model") plus an in-memory implementation.
//
// Responsibilities:
//   - Model only gets and sets attribute values and announces changes.
//   - Readers treat absent and non-string values as empty through String.
//   - Persisting the model (URL fragment, storage) is left to consumers.
//
// Attributes owned by the hidden query component:
//
//	HD  human readable description shown in the breadcrumb
//	HQ  expression fragment injected into the outgoing query
//
// Data flow:
//
//	URL parsing -> Model.Set(HQ/HD) -> hiddenquery reads on query/breadcrumb events
//	breadcrumb clear -> hiddenquery -> Model.Set(HD, "") + Model.Set(HQ, "")
package state
