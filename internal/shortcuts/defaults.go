package shortcuts

import "context"

// Shortcut categories used by the built-in catalogue.
const (
	CategoryNavigation = "Navigation"
	CategoryEditing    = "Editing"
	CategoryHelp       = "Help"
)

// Built-in shortcut ids.
const (
	IDOpenSearch     = "nav-search"
	IDGoDashboard    = "nav-dashboard"
	IDGoJobs         = "nav-jobs"
	IDGoApplications = "nav-applications"
	IDGoResumes      = "nav-resumes"
	IDGoSettings     = "nav-settings"
	IDNextItem       = "nav-next"
	IDPrevItem       = "nav-prev"
	IDShowHelp       = "help-show"
	IDSaveDraft      = "app-save"
)

// Handlers carries the action callbacks for the built-in dashboard
// shortcut set. Nil handlers are registered as no-ops so tooling can
// inspect and customize the catalogue without wiring a UI.
type Handlers struct {
	OpenSearch     Action
	GoDashboard    Action
	GoJobs         Action
	GoApplications Action
	GoResumes      Action
	GoSettings     Action
	NextItem       Action
	PrevItem       Action
	ShowHelp       Action
	SaveDraft      Action
}

// RegisterDefaults registers jobdeck's built-in shortcuts through the
// normal registration path.
func RegisterDefaults(ctx context.Context, r *Registry, h Handlers) error {
	defs := []Definition{
		{
			ID:               IDOpenSearch,
			Category:         CategoryNavigation,
			Description:      "Open global search",
			DefaultKeys:      []string{ModMeta, "k"},
			Action:           orNoop(h.OpenSearch),
			PlatformSpecific: true,
		},
		{
			ID:          IDGoDashboard,
			Category:    CategoryNavigation,
			Description: "Go to dashboard",
			DefaultKeys: []string{"g", "d"},
			Action:      orNoop(h.GoDashboard),
		},
		{
			ID:          IDGoJobs,
			Category:    CategoryNavigation,
			Description: "Go to job board",
			DefaultKeys: []string{"g", "j"},
			Action:      orNoop(h.GoJobs),
		},
		{
			ID:          IDGoApplications,
			Category:    CategoryNavigation,
			Description: "Go to applications pipeline",
			DefaultKeys: []string{"g", "a"},
			Action:      orNoop(h.GoApplications),
		},
		{
			ID:          IDGoResumes,
			Category:    CategoryNavigation,
			Description: "Go to resumes",
			DefaultKeys: []string{"g", "r"},
			Action:      orNoop(h.GoResumes),
		},
		{
			ID:          IDGoSettings,
			Category:    CategoryNavigation,
			Description: "Go to settings",
			DefaultKeys: []string{"g", "s"},
			Action:      orNoop(h.GoSettings),
		},
		{
			ID:          IDNextItem,
			Category:    CategoryNavigation,
			Description: "Select next item in list",
			DefaultKeys: []string{"g", "n"},
			Action:      orNoop(h.NextItem),
		},
		{
			ID:          IDPrevItem,
			Category:    CategoryNavigation,
			Description: "Select previous item in list",
			DefaultKeys: []string{"g", "p"},
			Action:      orNoop(h.PrevItem),
		},
		{
			ID:          IDShowHelp,
			Category:    CategoryHelp,
			Description: "Show keyboard shortcuts",
			DefaultKeys: []string{"?"},
			Action:      orNoop(h.ShowHelp),
		},
		{
			ID:               IDSaveDraft,
			Category:         CategoryEditing,
			Description:      "Save current draft",
			DefaultKeys:      []string{ModMeta, "s"},
			Action:           orNoop(h.SaveDraft),
			PlatformSpecific: true,
		},
	}

	for _, def := range defs {
		if err := r.Register(ctx, def); err != nil {
			return err
		}
	}
	return nil
}

func orNoop(a Action) Action {
	if a == nil {
		return func() {}
	}
	return a
}
