package guide

import "testing"

func TestSections(t *testing.T) {
	source := `Welcome to Tokyo.

## Highlights

Senso-ji and the Skytree.

## Food

Ramen everywhere.

### Sub-heading stays in its section

More food notes.

## Transport

Get a Suica card.
`
	sections := Sections(source)
	if len(sections) != 4 {
		t.Fatalf("Sections() has %d entries, want 4: %+v", len(sections), sections)
	}

	if sections[0].Title != "" || sections[0].Body != "Welcome to Tokyo." {
		t.Errorf("intro section = %+v", sections[0])
	}
	if sections[1].Title != "Highlights" || sections[1].Body != "Senso-ji and the Skytree." {
		t.Errorf("highlights section = %+v", sections[1])
	}
	if sections[2].Title != "Food" {
		t.Errorf("food section title = %q", sections[2].Title)
	}
	// A level-3 heading does not start a new section.
	if want := "Ramen everywhere.\n\n### Sub-heading stays in its section\n\nMore food notes."; sections[2].Body != want {
		t.Errorf("food section body = %q, want %q", sections[2].Body, want)
	}
	if sections[3].Title != "Transport" || sections[3].Body != "Get a Suica card." {
		t.Errorf("transport section = %+v", sections[3])
	}
}

func TestSections_NoHeadings(t *testing.T) {
	sections := Sections("just a paragraph")
	if len(sections) != 1 || sections[0].Title != "" || sections[0].Body != "just a paragraph" {
		t.Errorf("Sections() = %+v", sections)
	}
}

func TestSections_Empty(t *testing.T) {
	if got := Sections(""); len(got) != 0 {
		t.Errorf("Sections(\"\") = %+v, want none", got)
	}
	if got := Sections("   \n\n  "); len(got) != 0 {
		t.Errorf("Sections(blank) = %+v, want none", got)
	}
}

func TestSections_LeadingLevelOne(t *testing.T) {
	sections := Sections("# Tokyo\n\nIntro text.\n\n## Food\n\nRamen.")
	if len(sections) != 2 {
		t.Fatalf("Sections() has %d entries, want 2", len(sections))
	}
	if sections[0].Title != "Tokyo" || sections[0].Body != "Intro text." {
		t.Errorf("first section = %+v", sections[0])
	}
	if sections[1].Title != "Food" || sections[1].Body != "Ramen." {
		t.Errorf("second section = %+v", sections[1])
	}
}
