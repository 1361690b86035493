package searchui

// User-facing messages.
const (
	MsgNoResults    = "Nie znaleziono wyników dla tego zapytania."
	MsgSearchFailed = "Coś poszło nie tak przy wyszukiwaniu. Spróbuj ponownie lub zmień wyszukiwany tekst."
	MsgDetailFailed = "Nie udało się załadować pełnej listy skrytek dla podanego podmiotu. Spróbuj ponownie lub skontaktuj się z administratorem."
)
