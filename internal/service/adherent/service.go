// Package adherent implements the member use-cases: CRUD with password
// hashing, role filtering, the loans-by-member traversal and login.
package adherent

import (
	"context"
	"fmt"
	"sync"

	"github.com/tinoosan/booksapi/internal/credential"
	"github.com/tinoosan/booksapi/internal/docstore"
	"github.com/tinoosan/booksapi/internal/errs"
	"github.com/tinoosan/booksapi/internal/ident"
	"github.com/tinoosan/booksapi/internal/library"
)

// PasswordHasher hashes and checks member passwords.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, hashed string) bool
}

// TokenIssuer mints access tokens for authenticated members.
type TokenIssuer interface {
	Issue(subject, adherentID string) (credential.Token, error)
}

// ListQuery filters List by exact role.
type ListQuery struct {
	Role string
	Page docstore.Page
}

type Service interface {
	Get(ctx context.Context, id ident.ID) (library.Adherent, error)
	List(ctx context.Context, q ListQuery) ([]library.Adherent, error)
	Create(ctx context.Context, in library.AdherentInput) (library.Adherent, error)
	Update(ctx context.Context, id ident.ID, in library.AdherentInput) (library.Adherent, error)
	Delete(ctx context.Context, id ident.ID) error
	Loans(ctx context.Context, adherentID ident.ID) ([]library.Loan, error)
	Login(ctx context.Context, login, password string) (credential.Token, error)
}

type service struct {
	adherents docstore.Collection[library.AdherentDoc]
	loans     docstore.Collection[library.LoanDoc]
	hasher    PasswordHasher
	issuer    TokenIssuer

	dummyOnce sync.Once
	dummyHash string
}

func New(adherents docstore.Collection[library.AdherentDoc], loans docstore.Collection[library.LoanDoc], hasher PasswordHasher, issuer TokenIssuer) Service {
	return &service{adherents: adherents, loans: loans, hasher: hasher, issuer: issuer}
}

func (s *service) Get(ctx context.Context, id ident.ID) (library.Adherent, error) {
	d, err := s.adherents.FindByID(ctx, id)
	if err != nil {
		return library.Adherent{}, err
	}
	return library.AdherentFromDoc(d), nil
}

func (s *service) List(ctx context.Context, q ListQuery) ([]library.Adherent, error) {
	if q.Role != "" && !library.Role(q.Role).IsValid() {
		return nil, fmt.Errorf("%w: unknown role %q", errs.ErrInvalid, q.Role)
	}
	docs, err := s.adherents.Find(ctx, docstore.Filter{}.Eq(library.FieldRole, q.Role), q.Page)
	if err != nil {
		return nil, err
	}
	out := make([]library.Adherent, 0, len(docs))
	for _, d := range docs {
		out = append(out, library.AdherentFromDoc(d))
	}
	return out, nil
}

func (s *service) Create(ctx context.Context, in library.AdherentInput) (library.Adherent, error) {
	if err := in.Validate(); err != nil {
		return library.Adherent{}, err
	}
	if in.Password == "" {
		return library.Adherent{}, fmt.Errorf("%w: missing required fields: password", errs.ErrInvalid)
	}
	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return library.Adherent{}, err
	}
	doc := in.Doc(hash)
	id, err := s.adherents.Insert(ctx, doc)
	if err != nil {
		return library.Adherent{}, err
	}
	doc.ID = id
	return library.AdherentFromDoc(doc), nil
}

// Update replaces the member. A non-empty password is re-hashed; an empty
// one keeps the stored hash.
func (s *service) Update(ctx context.Context, id ident.ID, in library.AdherentInput) (library.Adherent, error) {
	if err := in.Validate(); err != nil {
		return library.Adherent{}, err
	}
	var hash string
	if in.Password == "" {
		existing, err := s.adherents.FindByID(ctx, id)
		if err != nil {
			return library.Adherent{}, err
		}
		hash = existing.Password
	} else {
		h, err := s.hasher.Hash(in.Password)
		if err != nil {
			return library.Adherent{}, err
		}
		hash = h
	}
	doc := in.Doc(hash)
	doc.ID = id
	d, err := docstore.Replace(ctx, s.adherents, id, doc)
	if err != nil {
		return library.Adherent{}, err
	}
	return library.AdherentFromDoc(d), nil
}

func (s *service) Delete(ctx context.Context, id ident.ID) error {
	return docstore.Remove(ctx, s.adherents, id)
}

// Loans returns every loan referencing the member, unfiltered and unpaged.
func (s *service) Loans(ctx context.Context, adherentID ident.ID) ([]library.Loan, error) {
	if adherentID.IsZero() {
		return []library.Loan{}, nil
	}
	docs, err := s.loans.Find(ctx, docstore.Filter{}.EqID(library.FieldAdherentID, adherentID), docstore.Page{})
	if err != nil {
		return nil, err
	}
	out := make([]library.Loan, 0, len(docs))
	for _, d := range docs {
		out = append(out, library.LoanFromDoc(d))
	}
	return out, nil
}

// Login checks the credentials and issues a token. Unknown logins and wrong
// passwords both return errs.ErrAuthFailed after one bcrypt comparison.
func (s *service) Login(ctx context.Context, login, password string) (credential.Token, error) {
	if login == "" || password == "" {
		return credential.Token{}, errs.ErrAuthFailed
	}
	docs, err := s.adherents.Find(ctx, docstore.Filter{}.Eq(library.FieldLogin, login), docstore.Page{Limit: 1})
	if err != nil {
		return credential.Token{}, err
	}
	if len(docs) == 0 {
		s.hasher.Verify(password, s.dummy())
		return credential.Token{}, errs.ErrAuthFailed
	}
	d := docs[0]
	if !s.hasher.Verify(password, d.Password) {
		return credential.Token{}, errs.ErrAuthFailed
	}
	return s.issuer.Issue(d.Login, ident.Encode(d.ID))
}

// dummy lazily hashes a throwaway password at the configured cost.
func (s *service) dummy() string {
	s.dummyOnce.Do(func() {
		h, err := s.hasher.Hash("booksapi-unknown-login")
		if err == nil {
			s.dummyHash = h
		}
	})
	return s.dummyHash
}
