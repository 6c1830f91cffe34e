package v1

import (
	"github.com/tinoosan/booksapi/internal/credential"
	"github.com/tinoosan/booksapi/internal/service/adherent"
	"github.com/tinoosan/booksapi/internal/storage/memory"
)

// Compile-time interface assertions for the collaborators wired by main.
var (
	_ TokenAuthority          = (*credential.Issuer)(nil)
	_ adherent.PasswordHasher = credential.Hasher{}
	_ ReadyChecker            = (*memory.Store)(nil)
)
