// Package methods holds the pagination capability catalog of the web API
// client: which remote operations can be auto-paginated, with which
// strategy, and where each operation puts its page of items.
//
// Three strategies exist:
//
//   - cursor: the server returns an opaque token in
//     response_metadata.next_cursor; requests carry cursor and limit.
//   - timeline: requests carry an oldest/latest timestamp window and an
//     inclusive flag; the window is moved past the last item seen.
//   - traditional: requests carry a 1-based page and a count page size.
//
// Every operation maps to exactly one Capability. A Registry is built once
// from a declarative list of Declarations and is read-only afterwards, so it
// can be shared by any number of concurrent pagination sessions:
//
//	reg, err := methods.DefaultCatalog()
//	if err != nil {
//		return err
//	}
//	capability := reg.Classify("conversations.list")
//	// capability.Strategy == methods.StrategyCursor
//	// capability.ItemsField == "channels"
//
// Custom catalogs are loaded from YAML with LoadCatalog, or converted from
// the legacy three-collection form with MergeRegistries.
package methods
