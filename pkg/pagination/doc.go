// Package pagination drives auto-pagination of web API operations.
//
// A Paginator looks up the operation in a methods.Registry, then repeatedly
// builds the next request, invokes the externally supplied Caller, and
// inspects the response to decide whether another page exists. Pages are
// exposed as a lazy, single-pass iter.Seq2:
//
//	reg := methods.MustDefaultCatalog()
//	p, err := pagination.New(reg, caller, pagination.DefaultConfig())
//	if err != nil {
//		return err
//	}
//	pages, err := p.Pages(ctx, "conversations.list", pagination.Args{"limit": 200})
//	if err != nil {
//		return err // ErrUnsupportedOperation, ErrInvalidOptions
//	}
//	for page, err := range pages {
//		if err != nil {
//			return err // transport failure, malformed response, cancellation
//		}
//		handle(page.Items)
//	}
//
// Calls within a session are strictly sequential: every request depends on
// the continuation state of the previous response. The context is checked
// before each call; a call already in flight is never interrupted by the
// paginator. Breaking out of the loop ends the session without further calls.
//
// Independent sessions share nothing but the read-only registry. BatchFetcher
// runs many of them in parallel on a bounded worker pool.
//
// The paginator does not authenticate, retry, rate limit or serialize
// requests; those belong to the Caller.
package pagination
