package index

import (
	"context"
	"log/slog"
	"strings"

	"github.com/starford/folio/internal/content"
	"github.com/starford/folio/internal/models"
)

// Sync brings the index up to date with snap. It is a no-op when the index
// already holds the snapshot's version.
func Sync(ctx context.Context, db *DB, snap *content.Snapshot, logger *slog.Logger) error {
	version := snap.Version()
	current, err := db.Version(ctx)
	if err != nil {
		return err
	}
	if current == version {
		logger.Debug("sync: index up to date", slog.String("version", version))
		return nil
	}

	rows := Rows(snap)
	if err := db.Replace(ctx, version, rows); err != nil {
		return err
	}
	logger.Info("sync: index rebuilt",
		slog.Int("records", len(rows)),
		slog.String("version", version))
	return nil
}

// Rows flattens every record of snap into index rows.
func Rows(snap *content.Snapshot) []Row {
	rows := make([]Row, 0, len(snap.Experience)+len(snap.Projects))
	for i, e := range snap.Experience {
		rows = append(rows, experienceRow(i, e))
	}
	for i, p := range snap.Projects {
		rows = append(rows, projectRow(i, p))
	}
	return rows
}

func experienceRow(pos int, e models.Experience) Row {
	var tags []string
	if e.ExperienceType != "" {
		tags = append(tags, e.ExperienceType)
	}
	return Row{
		Collection: string(models.CollectionExperience),
		ID:         e.ID,
		Title:      e.Title + " at " + e.OrganizationName,
		Body:       joinNonEmpty(e.Description, e.Location),
		Tags:       nonNil(tags),
		Position:   pos,
	}
}

func projectRow(pos int, p models.Project) Row {
	return Row{
		Collection: string(models.CollectionProjects),
		ID:         p.ID,
		Title:      p.ProjectName,
		Body:       joinNonEmpty(p.ProjectType, p.ProjectDescription, p.ArchitectureDetails, p.DesignDecisions),
		Tags:       p.TechList(),
		Position:   pos,
	}
}

func joinNonEmpty(parts ...string) string {
	out := parts[:0:0]
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return strings.Join(out, "\n")
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
