package seeder

import (
	"context"
	"fmt"

	"github.com/modonty1-rgb/modonty-sub003/pkg/distribution"
	"github.com/modonty1-rgb/modonty-sub003/pkg/models"
	"github.com/modonty1-rgb/modonty-sub003/pkg/tracing"
)

// seedMedia creates brand media for every client, backfills the client's
// media references, and attaches a post image to every published article.
// Image failures never fail the step: the asset falls back to a placeholder.
func (s *Seeder) seedMedia(ctx context.Context, st *state) error {
	ctx, span := tracing.StartSpan(ctx, "Seeder.seedMedia")
	defer span.End()

	em := st.events.WithStep("media")

	brand := []struct {
		mediaType models.MediaType
		width     int
		height    int
	}{
		{models.MediaTypeLogo, 512, 512},
		{models.MediaTypeOGImage, 1200, 630},
		{models.MediaTypeTwitterImage, 1200, 600},
	}

	for i, c := range st.clients {
		ids := make(map[models.MediaType]*string, len(brand))
		for _, b := range brand {
			term := fmt.Sprintf("%s %s", c.Name, b.mediaType)
			publicID := fmt.Sprintf("clients/%s/%s", c.Slug, b.mediaType)

			created, err := s.repos.Media.Create(ctx, models.Media{
				Type:     b.mediaType,
				PublicID: publicID,
				URL:      s.resolveImageURL(ctx, st, term, publicID, b.width, b.height),
				AltText:  term,
				ClientID: &c.ID,
			})
			if err != nil {
				s.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
					"client": c.Slug,
					"type":   b.mediaType,
				}).Error("failed to create client media, skipping")
				continue
			}
			ids[b.mediaType] = &created.ID
		}

		err := s.repos.Clients.SetBrandMedia(ctx, c.ID,
			ids[models.MediaTypeLogo], ids[models.MediaTypeOGImage], ids[models.MediaTypeTwitterImage])
		if err != nil {
			s.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
				"client": c.Slug,
			}).Error("failed to backfill client media refs, skipping")
		}

		progress(em, i+1, len(st.clients), "client media")
	}

	published := st.published()
	for i, a := range published {
		publicID := fmt.Sprintf("articles/%s/cover", a.Slug)
		_, err := s.repos.Media.Create(ctx, models.Media{
			Type:      models.MediaTypePostImage,
			PublicID:  publicID,
			URL:       s.resolveImageURL(ctx, st, a.Title, publicID, 1200, 630),
			AltText:   a.Title,
			ArticleID: &a.ID,
		})
		if err != nil {
			s.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
				"article": a.Slug,
			}).Error("failed to create post image, skipping")
			continue
		}

		progress(em, i+1, len(published), "post images")
	}

	return nil
}

// seedArticleGalleries attaches small ordered galleries to published articles.
func (s *Seeder) seedArticleGalleries(ctx context.Context, st *state) error {
	ctx, span := tracing.StartSpan(ctx, "Seeder.seedArticleGalleries")
	defer span.End()

	em := st.events.WithStep("article-galleries")

	published := st.published()
	perArticle := distribution.ScaleRangeFloor(st.opts.Total, 0, 3, 0)

	for i, a := range published {
		n := perArticle.Sample(st.rng)
		for pos := 0; pos < n; pos++ {
			publicID := fmt.Sprintf("articles/%s/gallery-%d", a.Slug, pos+1)
			term := fmt.Sprintf("%s detail %d", a.Title, pos+1)

			created, err := s.repos.Media.Create(ctx, models.Media{
				Type:      models.MediaTypeGallery,
				PublicID:  publicID,
				URL:       s.resolveImageURL(ctx, st, term, publicID, 1024, 768),
				AltText:   term,
				ArticleID: &a.ID,
			})
			if err != nil {
				s.logger.WithContext(ctx).WithError(err).Error("failed to create gallery media, skipping")
				continue
			}

			if err := s.repos.Media.AttachToGallery(ctx, models.ArticleMedia{
				ArticleID: a.ID,
				MediaID:   created.ID,
				Position:  pos,
			}); err != nil {
				s.logger.WithContext(ctx).WithError(err).Error("failed to attach gallery media, skipping")
			}
		}

		progress(em, i+1, len(published), "article galleries")
	}

	return nil
}

// resolveImageURL runs the image pipeline for one asset: validate the
// candidate source, search an alternative on failure, upload by URL with a
// buffer-upload fallback, and fall back to a placeholder so no caller ever
// fails on imagery alone.
func (s *Seeder) resolveImageURL(ctx context.Context, st *state, term, publicID string, width, height int) string {
	if !st.opts.UseImages || s.images == nil {
		return placeholderImageURL(term, width, height)
	}

	src := sourceImageURL(term, width, height)
	check, err := s.images.Validate(ctx, src)
	if err != nil || !check.Valid {
		s.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"url": src,
		}).Error("image source failed validation, searching alternative")
		if alt, altErr := s.images.SearchAlternative(ctx, term); altErr == nil && alt != "" {
			src = alt
		}
	}

	if uploaded, err := s.images.UploadFromURL(ctx, src, publicID); err == nil {
		return uploaded.URL
	} else {
		s.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"public_id": publicID,
		}).Error("direct image upload failed, trying buffer upload")
	}

	if data, err := s.images.Download(ctx, src); err == nil {
		if uploaded, err := s.images.UploadBuffer(ctx, data, publicID); err == nil {
			return uploaded.URL
		}
	}

	s.logger.WithContext(ctx).WithFields(map[string]any{
		"public_id": publicID,
	}).Error("all image upload attempts failed, using placeholder")
	return placeholderImageURL(term, width, height)
}
