package v1

import "github.com/tinoosan/booksapi/internal/library"

type authorRequest struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	Nationality string `json:"nationality"`
}

// Request DTOs carry enums and dates as plain strings; Validate on the
// converted value reports format errors with a readable reason.
type bookRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Location    string  `json:"location"`
	Label       string  `json:"label"`
	Type        string  `json:"type"`
	PublishDate string  `json:"publishDate"`
	Publisher   string  `json:"publisher"`
	Language    string  `json:"language"`
	Link        string  `json:"link"`
	AuthorID    string  `json:"author_id"`
}

// adherentRequest is the only shape that carries a password; responses use library.Adherent.
type adherentRequest struct {
	FirstName        string `json:"first_name"`
	LastName         string `json:"last_name"`
	MembershipNumber string `json:"membership_number"`
	Login            string `json:"login"`
	Password         string `json:"password"`
	Role             string `json:"role"`
}

type loanRequest struct {
	LoanDate   string  `json:"loanDate"`
	ReturnDate *string `json:"returnDate"`
	BookID     string  `json:"book_id"`
	AdherentID string  `json:"adherent_id"`
}

type loginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

func toAuthor(req authorRequest) library.Author {
	return library.Author{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		Nationality: req.Nationality,
	}
}

func toBook(req bookRequest) library.Book {
	return library.Book{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Label:       req.Label,
		Type:        library.BookType(req.Type),
		PublishDate: library.Date(req.PublishDate),
		Publisher:   req.Publisher,
		Language:    req.Language,
		Link:        req.Link,
		AuthorID:    req.AuthorID,
	}
}

func toAdherentInput(req adherentRequest) library.AdherentInput {
	return library.AdherentInput{
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		MembershipNumber: req.MembershipNumber,
		Login:            req.Login,
		Password:         req.Password,
		Role:             library.Role(req.Role),
	}
}

func toLoan(req loanRequest) library.Loan {
	var ret *library.Date
	if req.ReturnDate != nil {
		d := library.Date(*req.ReturnDate)
		ret = &d
	}
	return library.Loan{
		LoanDate:   library.Date(req.LoanDate),
		ReturnDate: ret,
		BookID:     req.BookID,
		AdherentID: req.AdherentID,
	}
}

func identity[T any](v T) T { return v }
