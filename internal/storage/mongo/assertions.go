package mongo

import "github.com/tinoosan/booksapi/internal/docstore"

var _ docstore.Store = (*Store)(nil)
