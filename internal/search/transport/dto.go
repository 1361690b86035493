package transport

// SearchRequest is the query string of GET /search.
type SearchRequest struct {
	Query string `form:"query" validate:"required,max=200"`
	SearchOptions
}

// SearchOptions are the optional filters shared by both search routes.
// Nil means "use the server default".
type SearchOptions struct {
	CzyUrzad *bool `form:"czy_urzad"`
	Limit    *int  `form:"limit" validate:"omitempty,min=1,max=500"`
}

// URIsRequest is the path of GET /get_uris/:id.
type URIsRequest struct {
	ID int64 `uri:"id" validate:"required,min=1"`
}

// AddressRecord is one row of the search result. Nazwa and Regon are null
// when the registry has no value.
type AddressRecord struct {
	ID      int64   `json:"id"`
	Nazwa   *string `json:"nazwa"`
	Regon   *string `json:"regon"`
	Adres   string  `json:"adres"`
	Skrytka string  `json:"skrytka"`
}

// SearchParams is the validated input of the search service.
type SearchParams struct {
	Query    string
	CzyUrzad bool
	Limit    int
}
