package library

// Document field names, shared by filters and storage backends.
const (
	FieldID = "_id"

	FieldFirstName   = "first_name"
	FieldLastName    = "last_name"
	FieldEmail       = "email"
	FieldNationality = "nationality"

	FieldTitle       = "title"
	FieldDescription = "description"
	FieldLocation    = "location"
	FieldLabel       = "label"
	FieldType        = "type"
	FieldPublishDate = "publishDate"
	FieldPublisher   = "publisher"
	FieldLanguage    = "language"
	FieldLink        = "link"
	FieldAuthorID    = "author_id"

	FieldMembershipNumber = "membership_number"
	FieldLogin            = "login"
	FieldPassword         = "password"
	FieldRole             = "role"

	FieldLoanDate   = "loanDate"
	FieldReturnDate = "returnDate"
	FieldBookID     = "book_id"
	FieldAdherentID = "adherent_id"
)

// Collection names.
const (
	CollectionAuthors   = "authors"
	CollectionBooks     = "books"
	CollectionAdherents = "adherents"
	CollectionLoans     = "loans"
)
