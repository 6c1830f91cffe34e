package library

import (
	"fmt"

	"github.com/tinoosan/booksapi/internal/ident"
)

// Persistence documents. References are native ids; enums and dates are
// stored as plain strings so that reading a document never fails on a
// value written by an older release.

type AuthorDoc struct {
	ID          ident.ID `bson:"_id,omitempty" json:"_id"`
	FirstName   string   `bson:"first_name" json:"first_name"`
	LastName    string   `bson:"last_name" json:"last_name"`
	Email       string   `bson:"email" json:"email"`
	Nationality string   `bson:"nationality" json:"nationality"`
}

type BookDoc struct {
	ID          ident.ID `bson:"_id,omitempty" json:"_id"`
	Title       string   `bson:"title" json:"title"`
	Description *string  `bson:"description" json:"description"`
	Location    string   `bson:"location" json:"location"`
	Label       string   `bson:"label" json:"label"`
	Type        string   `bson:"type" json:"type"`
	PublishDate string   `bson:"publishDate" json:"publishDate"`
	Publisher   string   `bson:"publisher" json:"publisher"`
	Language    string   `bson:"language" json:"language"`
	Link        string   `bson:"link" json:"link"`
	AuthorID    ident.ID `bson:"author_id" json:"author_id"`
}

type AdherentDoc struct {
	ID               ident.ID `bson:"_id,omitempty" json:"_id"`
	FirstName        string   `bson:"first_name" json:"first_name"`
	LastName         string   `bson:"last_name" json:"last_name"`
	MembershipNumber string   `bson:"membership_number" json:"membership_number"`
	Login            string   `bson:"login" json:"login"`
	// Password holds the bcrypt hash, never the plaintext.
	Password string `bson:"password" json:"password"`
	Role     string `bson:"role" json:"role"`
}

type LoanDoc struct {
	ID         ident.ID `bson:"_id,omitempty" json:"_id"`
	LoanDate   string   `bson:"loanDate" json:"loanDate"`
	ReturnDate *string  `bson:"returnDate" json:"returnDate"`
	BookID     ident.ID `bson:"book_id" json:"book_id"`
	AdherentID ident.ID `bson:"adherent_id" json:"adherent_id"`
}

// AuthorFromDoc renders a stored author for output.
func AuthorFromDoc(d AuthorDoc) Author {
	return Author{
		ID:          ident.Encode(d.ID),
		FirstName:   d.FirstName,
		LastName:    d.LastName,
		Email:       d.Email,
		Nationality: d.Nationality,
	}
}

// Doc builds the persistence document. The id is left to the caller.
func (a Author) Doc() AuthorDoc {
	return AuthorDoc{
		FirstName:   a.FirstName,
		LastName:    a.LastName,
		Email:       a.Email,
		Nationality: a.Nationality,
	}
}

// BookFromDoc renders a stored book for output.
func BookFromDoc(d BookDoc) Book {
	return Book{
		ID:          ident.Encode(d.ID),
		Title:       d.Title,
		Description: d.Description,
		Location:    d.Location,
		Label:       d.Label,
		Type:        BookType(d.Type),
		PublishDate: Date(d.PublishDate),
		Publisher:   d.Publisher,
		Language:    d.Language,
		Link:        d.Link,
		AuthorID:    ident.EncodeRef(d.AuthorID),
	}
}

// Doc builds the persistence document, decoding the author reference.
func (b Book) Doc() (BookDoc, error) {
	authorID, err := ident.Decode(b.AuthorID)
	if err != nil {
		return BookDoc{}, fmt.Errorf("author_id: %w", err)
	}
	return BookDoc{
		Title:       b.Title,
		Description: b.Description,
		Location:    b.Location,
		Label:       b.Label,
		Type:        string(b.Type),
		PublishDate: string(b.PublishDate),
		Publisher:   b.Publisher,
		Language:    b.Language,
		Link:        b.Link,
		AuthorID:    authorID,
	}, nil
}

// AdherentFromDoc renders a stored member for output, dropping the password hash.
func AdherentFromDoc(d AdherentDoc) Adherent {
	return Adherent{
		ID:               ident.Encode(d.ID),
		FirstName:        d.FirstName,
		LastName:         d.LastName,
		MembershipNumber: d.MembershipNumber,
		Login:            d.Login,
		Role:             Role(d.Role),
	}
}

// Doc builds the persistence document with an already hashed password.
func (in AdherentInput) Doc(passwordHash string) AdherentDoc {
	return AdherentDoc{
		FirstName:        in.FirstName,
		LastName:         in.LastName,
		MembershipNumber: in.MembershipNumber,
		Login:            in.Login,
		Password:         passwordHash,
		Role:             string(in.Role),
	}
}

// LoanFromDoc renders a stored loan for output.
func LoanFromDoc(d LoanDoc) Loan {
	var ret *Date
	if d.ReturnDate != nil {
		v := Date(*d.ReturnDate)
		ret = &v
	}
	return Loan{
		ID:         ident.Encode(d.ID),
		LoanDate:   Date(d.LoanDate),
		ReturnDate: ret,
		BookID:     ident.EncodeRef(d.BookID),
		AdherentID: ident.EncodeRef(d.AdherentID),
	}
}

// Doc builds the persistence document, decoding both references.
// Existence of the referenced book and adherent is not checked.
func (l Loan) Doc() (LoanDoc, error) {
	bookID, err := ident.Decode(l.BookID)
	if err != nil {
		return LoanDoc{}, fmt.Errorf("book_id: %w", err)
	}
	adherentID, err := ident.Decode(l.AdherentID)
	if err != nil {
		return LoanDoc{}, fmt.Errorf("adherent_id: %w", err)
	}
	var ret *string
	if l.ReturnDate != nil {
		v := string(*l.ReturnDate)
		ret = &v
	}
	return LoanDoc{
		LoanDate:   string(l.LoanDate),
		ReturnDate: ret,
		BookID:     bookID,
		AdherentID: adherentID,
	}, nil
}
