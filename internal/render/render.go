// Package render projects the catalogue and selection into view data.
//
// Buttons and Detail are pure; Render is the single place that hands the
// projected fragments to a Writer.
package render

import (
	"github.com/atomicstack/menagerie/internal/catalogue"
	"github.com/atomicstack/menagerie/internal/logging/events"
	"github.com/atomicstack/menagerie/internal/selection"
)

// Fixed names of the two insertion points in the presentation layer.
const (
	MountButtons = "animalsGrid"
	MountDetail  = "animalDetails"
)

const (
	WelcomeIcon    = "🌟"
	WelcomeTitle   = "Bienvenue !"
	WelcomeMessage = "Sélectionne un animal pour découvrir ses caractéristiques fascinantes."

	NotFoundIcon    = "❓"
	NotFoundTitle   = "Animal introuvable"
	NotFoundMessage = "Cet animal n'existe pas dans le catalogue."

	DescriptionHeading = "📖 Description"
	HabitatHeading     = "🌍 Habitat naturel"
)

// Button is one entry of the button grid.
type Button struct {
	ID     string
	Label  string
	Emoji  string
	Active bool
}

// PanelKind distinguishes the detail panel fragments.
type PanelKind int

const (
	PanelWelcome PanelKind = iota
	PanelAnimal
	PanelNotFound
)

func (k PanelKind) String() string {
	switch k {
	case PanelWelcome:
		return "welcome"
	case PanelAnimal:
		return "animal"
	case PanelNotFound:
		return "not-found"
	default:
		return "unknown"
	}
}

// Panel is the detail fragment. Icon, Title and Message are set for the
// welcome and not-found fragments; Animal is set for PanelAnimal and, for
// PanelNotFound, carries the unresolved id.
type Panel struct {
	Kind    PanelKind
	Icon    string
	Title   string
	Message string
	Animal  catalogue.Record
}

// View bundles both projections.
type View struct {
	Buttons []Button
	Detail  Panel
}

// Writer receives projected fragments and overwrites whatever it showed
// before.
type Writer interface {
	WriteButtons(buttons []Button)
	WriteDetail(panel Panel)
}

// Buttons projects one button per record, in catalogue order.
func Buttons(cat catalogue.Catalogue, st selection.State) []Button {
	buttons := make([]Button, 0, cat.Len())
	for _, r := range cat.Records() {
		buttons = append(buttons, Button{
			ID:     r.ID,
			Label:  r.Label(),
			Emoji:  r.Emoji,
			Active: st.IsSelected(r.ID),
		})
	}
	// With duplicate ids only the first occurrence is the one lookup
	// resolves, so only that button is marked.
	seen := false
	for i := range buttons {
		if !buttons[i].Active {
			continue
		}
		if seen {
			buttons[i].Active = false
		}
		seen = true
	}
	return buttons
}

// Detail projects the detail panel for the current selection.
func Detail(cat catalogue.Catalogue, st selection.State) Panel {
	id, ok := st.Selected()
	if !ok {
		return Welcome()
	}
	r, found := catalogue.FindByID(cat, id)
	if !found {
		return NotFound(id)
	}
	return Panel{Kind: PanelAnimal, Title: r.Label(), Icon: r.Emoji, Animal: r}
}

// Project returns both projections.
func Project(cat catalogue.Catalogue, st selection.State) View {
	return View{Buttons: Buttons(cat, st), Detail: Detail(cat, st)}
}

// Welcome is the fragment shown before anything is selected.
func Welcome() Panel {
	return Panel{Kind: PanelWelcome, Icon: WelcomeIcon, Title: WelcomeTitle, Message: WelcomeMessage}
}

// NotFound is the fragment for an id that no longer resolves.
func NotFound(id string) Panel {
	return Panel{
		Kind:    PanelNotFound,
		Icon:    NotFoundIcon,
		Title:   NotFoundTitle,
		Message: NotFoundMessage,
		Animal:  catalogue.Record{ID: id},
	}
}

// Render projects the state and writes both fragments to w.
func Render(w Writer, cat catalogue.Catalogue, st selection.State) View {
	view := Project(cat, st)
	if w == nil {
		return view
	}
	w.WriteButtons(view.Buttons)
	events.Render.Buttons(MountButtons, len(view.Buttons), ActiveIndex(view.Buttons))
	w.WriteDetail(view.Detail)
	events.Render.Detail(MountDetail, view.Detail.Kind.String(), view.Detail.Animal.ID)
	return view
}

// ActiveIndex returns the index of the active button or -1.
func ActiveIndex(buttons []Button) int {
	for i, b := range buttons {
		if b.Active {
			return i
		}
	}
	return -1
}
