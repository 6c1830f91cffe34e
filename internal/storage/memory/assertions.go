package memory

import "github.com/tinoosan/booksapi/internal/docstore"

// Compile-time interface assertion documenting which interface Store satisfies.
var _ docstore.Store = (*Store)(nil)
