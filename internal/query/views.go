package query

import (
	"slices"
	"strings"
	"time"

	"github.com/bakar-bkr-studio/app-gestion-auto-entreprise/internal/models"
)

func joinFields(fields ...string) string { return strings.Join(fields, "\n") }

var projectStart = func(p models.Project) (time.Time, bool) { return models.ParseDate(p.StartDate) }

// ProjectAccessor filters on name, stage and payment, dates on the start
// date, and always lists favourites first.
var ProjectAccessor = Accessor[models.Project]{
	Search:   func(p models.Project) string { return p.Name },
	Status:   func(p models.Project) string { return string(p.Status) },
	Payment:  func(p models.Project) string { return string(p.PaymentStatus) },
	Date:     projectStart,
	Favorite: func(p models.Project) bool { return p.IsFavorite },
	Sorts: map[SortKey]func(a, b models.Project) int{
		SortDateAsc:    ByDate(projectStart, false),
		SortDateDesc:   ByDate(projectStart, true),
		SortBudgetAsc:  ByNumber(func(p models.Project) float64 { return p.Budget }, false),
		SortBudgetDesc: ByNumber(func(p models.Project) float64 { return p.Budget }, true),
	},
}

var clientAdded = func(c models.Client) (time.Time, bool) { return c.DateAdded, !c.DateAdded.IsZero() }

// ClientAccessor treats "Client" and "Prospect" as status pseudo-tags.
var ClientAccessor = Accessor[models.Client]{
	Search: func(c models.Client) string { return joinFields(c.FirstName+" "+c.LastName, c.Company) },
	Tags:   func(c models.Client) []string { return c.Tags },
	Status: func(c models.Client) string { return string(c.Status) },
	Date:   clientAdded,
	PseudoTags: []string{
		string(models.ClientStatusClient),
		string(models.ClientStatusProspect),
	},
	Sorts: map[SortKey]func(a, b models.Client) int{
		SortDateAsc:  ByDate(clientAdded, false),
		SortDateDesc: ByDate(clientAdded, true),
	},
}

var taskDue = func(t models.Task) (time.Time, bool) { return models.ParseDate(t.DueDate) }

var TaskAccessor = Accessor[models.Task]{
	Search:  func(t models.Task) string { return t.Title },
	Status:  func(t models.Task) string { return string(t.Status) },
	Project: func(t models.Task) string { return t.Project },
	Date:    taskDue,
	Sorts: map[SortKey]func(a, b models.Task) int{
		SortPriority: ByNumber(func(t models.Task) int { return t.Priority.Rank() }, false),
		SortDateAsc:  ByDate(taskDue, false),
		SortDateDesc: ByDate(taskDue, true),
	},
}

var noteCreated = func(n models.Note) (time.Time, bool) { return n.CreatedAt, !n.CreatedAt.IsZero() }

var NoteAccessor = Accessor[models.Note]{
	Search: func(n models.Note) string { return joinFields(n.Title, n.Text) },
	Tags:   func(n models.Note) []string { return n.Tags },
	Date:   noteCreated,
	Sorts: map[SortKey]func(a, b models.Note) int{
		SortDateAsc:  ByDate(noteCreated, false),
		SortDateDesc: ByDate(noteCreated, true),
	},
}

var WebsiteAccessor = Accessor[models.Website]{
	Search: func(w models.Website) string { return joinFields(w.Name, w.Description) },
	Tags: func(w models.Website) []string {
		if w.Tag == "" {
			return nil
		}
		return []string{w.Tag}
	},
}

func Projects(items []models.Project, spec Spec) Result[models.Project] {
	return Run(items, spec, ProjectAccessor)
}

func Clients(items []models.Client, spec Spec) Result[models.Client] {
	return Run(items, spec, ClientAccessor)
}

func Tasks(items []models.Task, spec Spec) Result[models.Task] {
	return Run(items, spec, TaskAccessor)
}

func Notes(items []models.Note, spec Spec) Result[models.Note] {
	return Run(items, spec, NoteAccessor)
}

func Websites(items []models.Website, spec Spec) Result[models.Website] {
	return Run(items, spec, WebsiteAccessor)
}

// NoteTags lists the distinct note tags in first-seen order.
func NoteTags(notes []models.Note) []string {
	tags := []string{}
	for _, n := range notes {
		for _, t := range n.Tags {
			if t = strings.TrimSpace(t); t != "" && !slices.Contains(tags, t) {
				tags = append(tags, t)
			}
		}
	}
	return tags
}

// ProjectNames lists the distinct project names, used by the task project filter.
func ProjectNames(projects []models.Project) []string {
	names := []string{}
	for _, p := range projects {
		if p.Name != "" && !slices.Contains(names, p.Name) {
			names = append(names, p.Name)
		}
	}
	return names
}

// ResolveClient finds the client a project names. Names compare without case
// against the full name, then the company. A miss is not an error.
func ResolveClient(name string, clients []models.Client) (models.Client, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Client{}, false
	}
	for _, c := range clients {
		if strings.EqualFold(c.FullName(), name) {
			return c, true
		}
	}
	for _, c := range clients {
		if c.Company != "" && strings.EqualFold(c.Company, name) {
			return c, true
		}
	}
	return models.Client{}, false
}

// ResolveProject finds the project a task names.
func ResolveProject(name string, projects []models.Project) (models.Project, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Project{}, false
	}
	for _, p := range projects {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return models.Project{}, false
}
