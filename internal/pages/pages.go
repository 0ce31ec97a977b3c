// Package pages composes the view models of the site's pages from content
// collections. Each page fetches once, sorts or slices locally and never
// writes back.
package pages

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/starford/folio/internal/models"
)

// DefaultFeaturedCount is the number of projects shown on the home page.
const DefaultFeaturedCount = 3

// State is the lifecycle of a page load. A page starts loading and moves
// exactly once to ready or error.
type State string

const (
	StateLoading State = "loading"
	StateReady   State = "ready"
	StateError   State = "error"
)

// Source is the read side of the content facade the pages need.
type Source interface {
	Experience(ctx context.Context) ([]models.Experience, error)
	Projects(ctx context.Context) ([]models.Project, error)
}

// ProjectView is a project with its tech stack already split.
type ProjectView struct {
	models.Project
	Tech []string `json:"tech"`
}

// Home is the landing page: every experience, newest first, and the
// featured prefix of the projects.
type Home struct {
	State            State               `json:"state"`
	Experiences      []models.Experience `json:"experiences"`
	FeaturedProjects []ProjectView       `json:"featuredProjects"`
}

// Resume lists every experience, newest first.
type Resume struct {
	State       State               `json:"state"`
	Experiences []models.Experience `json:"experiences"`
}

// Projects lists every project in store order plus the one being shown in
// the detail panel.
type Projects struct {
	State    State         `json:"state"`
	Projects []ProjectView `json:"projects"`
	Selected *ProjectView  `json:"selected"`
}

// Builder assembles page view models.
type Builder struct {
	src      Source
	featured int
	logger   *slog.Logger
}

// NewBuilder creates a Builder. featured <= 0 falls back to DefaultFeaturedCount.
func NewBuilder(src Source, featured int, logger *slog.Logger) *Builder {
	if featured <= 0 {
		featured = DefaultFeaturedCount
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{src: src, featured: featured, logger: logger}
}

// Home fetches both collections concurrently. A failed fetch is logged and
// leaves both lists empty with StateError.
func (b *Builder) Home(ctx context.Context) Home {
	page := Home{
		State:            StateLoading,
		Experiences:      []models.Experience{},
		FeaturedProjects: []ProjectView{},
	}

	var exp []models.Experience
	var projects []models.Project
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		exp, err = b.src.Experience(gCtx)
		return err
	})
	g.Go(func() error {
		var err error
		projects, err = b.src.Projects(gCtx)
		return err
	})
	if err := g.Wait(); err != nil {
		b.logger.Error("failed to fetch home page data", slog.String("error", err.Error()))
		page.State = StateError
		return page
	}

	page.Experiences = SortExperiences(exp)
	page.FeaturedProjects = views(Featured(projects, b.featured))
	page.State = StateReady
	return page
}

// Resume fetches and sorts the experience collection.
func (b *Builder) Resume(ctx context.Context) Resume {
	page := Resume{State: StateLoading, Experiences: []models.Experience{}}
	exp, err := b.src.Experience(ctx)
	if err != nil {
		b.logger.Error("failed to fetch resume data", slog.String("error", err.Error()))
		page.State = StateError
		return page
	}
	page.Experiences = SortExperiences(exp)
	page.State = StateReady
	return page
}

// Projects fetches every project. selectedID picks the detail project; an
// empty or unknown id selects the first project.
func (b *Builder) Projects(ctx context.Context, selectedID string) Projects {
	page := Projects{State: StateLoading, Projects: []ProjectView{}}
	projects, err := b.src.Projects(ctx)
	if err != nil {
		b.logger.Error("failed to fetch projects", slog.String("error", err.Error()))
		page.State = StateError
		return page
	}
	page.Projects = views(projects)
	for i := range page.Projects {
		if page.Projects[i].ID == selectedID {
			page.Selected = &page.Projects[i]
			break
		}
	}
	if page.Selected == nil && len(page.Projects) > 0 {
		page.Selected = &page.Projects[0]
	}
	page.State = StateReady
	return page
}

func views(projects []models.Project) []ProjectView {
	out := make([]ProjectView, len(projects))
	for i, p := range projects {
		out[i] = ProjectView{Project: p, Tech: p.TechList()}
	}
	return out
}
