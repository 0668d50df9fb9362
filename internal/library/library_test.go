package library

import "testing"

func TestQuoteIDStable(t *testing.T) {
	a := QuoteID("Seneca", "Letters", 3)
	b := QuoteID("Seneca", "Letters", 3)
	if a != b {
		t.Errorf("same inputs produced different IDs: %s vs %s", a, b)
	}
	if len(a) != 16 {
		t.Errorf("expected 16-char ID, got %d chars", len(a))
	}
}

func TestQuoteIDDistinguishesInputs(t *testing.T) {
	base := QuoteID("Seneca", "Letters", 0)
	if QuoteID("Seneca", "Letters", 1) == base {
		t.Error("sequence change did not change ID")
	}
	if QuoteID("Seneca", "On Anger", 0) == base {
		t.Error("work change did not change ID")
	}
	if QuoteID("Epictetus", "Letters", 0) == base {
		t.Error("author change did not change ID")
	}
}

func TestAuthorIDIndependentOfQuoteID(t *testing.T) {
	// An author folder that happens to share text with a quote key must not
	// collide with quote ID space.
	if AuthorID("Seneca") == QuoteID("Seneca", "", 0) {
		t.Error("author and quote ID derivations collide")
	}
}

func testAuthors() []*Author {
	seneca := &Author{ID: AuthorID("Seneca"), Name: "Seneca"}
	seneca.Works = []Work{{
		Title: "Letters",
		Quotes: []Quote{
			{ID: QuoteID("Seneca", "Letters", 0), Text: "first", Author: "Seneca", AuthorID: seneca.ID, Work: "Letters", Seq: 0},
			{ID: QuoteID("Seneca", "Letters", 1), Text: "second", Author: "Seneca", AuthorID: seneca.ID, Work: "Letters", Seq: 1},
		},
	}}
	twain := &Author{ID: AuthorID("Twain"), Name: "Twain"}
	twain.Works = []Work{
		{Title: "Essays", Quotes: []Quote{
			{ID: QuoteID("Twain", "Essays", 0), Text: "third", Author: "Twain", AuthorID: twain.ID, Work: "Essays", Seq: 0},
		}},
		{Title: "Speeches", Quotes: []Quote{
			{ID: QuoteID("Twain", "Speeches", 0), Text: "fourth", Author: "Twain", AuthorID: twain.ID, Work: "Speeches", Seq: 0},
		}},
	}
	// Deliberately out of name order to exercise catalog sorting.
	return []*Author{twain, seneca}
}

func TestCatalogIndexes(t *testing.T) {
	cat := NewCatalog(testAuthors())

	authors := cat.Authors()
	if len(authors) != 2 {
		t.Fatalf("expected 2 authors, got %d", len(authors))
	}
	if authors[0].Name != "Seneca" || authors[1].Name != "Twain" {
		t.Errorf("authors not sorted by name: %s, %s", authors[0].Name, authors[1].Name)
	}

	if len(cat.Quotes()) != 4 {
		t.Errorf("expected 4 quotes, got %d", len(cat.Quotes()))
	}

	id := QuoteID("Twain", "Speeches", 0)
	q, ok := cat.QuoteByID(id)
	if !ok {
		t.Fatalf("quote %s not found", id)
	}
	if q.Text != "fourth" {
		t.Errorf("wrong quote for ID: %q", q.Text)
	}

	a, ok := cat.AuthorByID(AuthorID("Seneca"))
	if !ok || a.Name != "Seneca" {
		t.Error("author lookup by ID failed")
	}
	if _, ok := cat.AuthorByName("Twain"); !ok {
		t.Error("author lookup by name failed")
	}
}

func TestCatalogSingleWorkFlag(t *testing.T) {
	cat := NewCatalog(testAuthors())
	seneca, _ := cat.AuthorByName("Seneca")
	twain, _ := cat.AuthorByName("Twain")
	if !seneca.SingleWork {
		t.Error("one-work author not flagged SingleWork")
	}
	if twain.SingleWork {
		t.Error("two-work author flagged SingleWork")
	}
}

func TestEmptyCatalog(t *testing.T) {
	if !NewCatalog(nil).Empty() {
		t.Error("catalog with no authors should be empty")
	}
	var nilCat *Catalog
	if !nilCat.Empty() {
		t.Error("nil catalog should report empty")
	}
	if NewCatalog(testAuthors()).Empty() {
		t.Error("populated catalog reported empty")
	}
}

func TestPlaceholder(t *testing.T) {
	p := Placeholder()
	if p.ID != "placeholder" || p.Text == "" {
		t.Errorf("unexpected placeholder: %+v", p)
	}
}
