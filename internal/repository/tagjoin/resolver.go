// Package tagjoin resolves tag membership through the deal_tags and
// coupon_tags join collections: matching records by tag text, and
// batch-enriching result pages with tag names.
package tagjoin

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/dealhive/dealsearch/internal/domain/search/filter"
	"github.com/dealhive/dealsearch/internal/logger"
	"github.com/dealhive/dealsearch/internal/store"
)

// Resolver answers tag-membership questions for one join collection.
type Resolver struct {
	store          store.Store
	joinCollection string
	recordField    string // "deal_id" or "coupon_id"
}

// New creates a resolver over a join collection.
func New(s store.Store, joinCollection, recordField string) *Resolver {
	return &Resolver{store: s, joinCollection: joinCollection, recordField: recordField}
}

// MatchIDs returns IDs of records carrying a tag whose name or slug
// contains text. Failures degrade to no tag matches (the text predicate
// still applies), logged at Warn.
func (r *Resolver) MatchIDs(ctx context.Context, text string) []string {
	tagIDs, err := r.tagIDs(ctx, filter.Or(
		filter.ContainsFold("name", text),
		filter.ContainsFold("slug", text),
	))
	if err != nil {
		logger.FromContext(ctx).Warn("tag match lookup failed",
			zap.String("join", r.joinCollection), zap.Error(err))
		return nil
	}
	return r.recordIDs(ctx, tagIDs)
}

// IDsForTags returns IDs of records carrying any of the named tags
// (matched by exact name or slug).
func (r *Resolver) IDsForTags(ctx context.Context, names []string) []string {
	tagIDs, err := r.tagIDs(ctx, filter.Or(
		filter.InStrings("name", names),
		filter.InStrings("slug", names),
	))
	if err != nil {
		logger.FromContext(ctx).Warn("tag filter lookup failed",
			zap.String("join", r.joinCollection), zap.Error(err))
		return nil
	}
	return r.recordIDs(ctx, tagIDs)
}

// NamesByRecordID fetches tag names for a page of records in two
// batched queries (never per-row).
func (r *Resolver) NamesByRecordID(ctx context.Context, recordIDs []string) (map[string][]string, error) {
	joins, err := r.store.Find(ctx, &store.Query{
		Collection: r.joinCollection,
		Where:      filter.InStrings(r.recordField, recordIDs),
	})
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", r.joinCollection, err)
	}
	if len(joins) == 0 {
		return map[string][]string{}, nil
	}

	tagIDSet := make(map[string]struct{})
	memberships := make([][2]string, 0, len(joins)) // [recordID, tagID]
	for _, j := range joins {
		recID, tagID := j.Str(r.recordField), j.Str("tag_id")
		if recID == "" || tagID == "" {
			continue
		}
		tagIDSet[tagID] = struct{}{}
		memberships = append(memberships, [2]string{recID, tagID})
	}

	tagIDs := make([]string, 0, len(tagIDSet))
	for id := range tagIDSet {
		tagIDs = append(tagIDs, id)
	}

	tagRows, err := r.store.Find(ctx, &store.Query{
		Collection: store.Tags,
		Where:      filter.InStrings("id", tagIDs),
	})
	if err != nil {
		return nil, fmt.Errorf("find tags: %w", err)
	}

	nameByID := make(map[string]string, len(tagRows))
	for _, t := range tagRows {
		nameByID[t.Str("id")] = t.Str("name")
	}

	out := make(map[string][]string)
	for _, m := range memberships {
		if name := nameByID[m[1]]; name != "" {
			out[m[0]] = append(out[m[0]], name)
		}
	}
	return out, nil
}

func (r *Resolver) tagIDs(ctx context.Context, where filter.Node) ([]string, error) {
	rows, err := r.store.Find(ctx, &store.Query{Collection: store.Tags, Where: where})
	if err != nil {
		return nil, fmt.Errorf("find tags: %w", err)
	}
	ids := make([]string, 0, len(rows))
	for _, rec := range rows {
		if id := rec.Str("id"); id != "" {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// recordIDs resolves tag IDs to member record IDs through the join
// collection. Failures degrade to none, logged at Warn.
func (r *Resolver) recordIDs(ctx context.Context, tagIDs []string) []string {
	if len(tagIDs) == 0 {
		return nil
	}
	joins, err := r.store.Find(ctx, &store.Query{
		Collection: r.joinCollection,
		Where:      filter.InStrings("tag_id", tagIDs),
	})
	if err != nil {
		logger.FromContext(ctx).Warn("tag membership lookup failed",
			zap.String("join", r.joinCollection), zap.Error(err))
		return nil
	}

	seen := make(map[string]struct{}, len(joins))
	ids := make([]string, 0, len(joins))
	for _, j := range joins {
		id := j.Str(r.recordField)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}
