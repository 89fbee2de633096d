// Package graph exposes the idea service over GraphQL.
package graph

import (
	"context"
	_ "embed"
	"strconv"

	graphql "github.com/graph-gophers/graphql-go"

	"github.com/joestump/ideaboard/internal/service"
	"github.com/joestump/ideaboard/internal/store"
)

//go:embed schema.graphql
var Schema string

// Resolver is the root resolver for both Query and Mutation.
type Resolver struct {
	svc *service.Service
}

// NewSchema parses the schema and binds it to svc.
func NewSchema(svc *service.Service) (*graphql.Schema, error) {
	return graphql.ParseSchema(Schema, &Resolver{svc: svc})
}

func (r *Resolver) Ideas(ctx context.Context) ([]*ideaResolver, error) {
	ideas, err := r.svc.Ideas(ctx)
	if err != nil {
		return nil, wrapError(err)
	}
	out := make([]*ideaResolver, len(ideas))
	for i, idea := range ideas {
		out[i] = &ideaResolver{idea: idea}
	}
	return out, nil
}

func (r *Resolver) Idea(ctx context.Context, args struct{ ID graphql.ID }) (*ideaResolver, error) {
	idea, err := r.svc.Idea(ctx, string(args.ID))
	if err != nil {
		return nil, wrapError(err)
	}
	if idea == nil {
		return nil, nil
	}
	return &ideaResolver{idea: idea}, nil
}

func (r *Resolver) CreateIdea(ctx context.Context, args struct{ Text string }) (*ideaResolver, error) {
	idea, err := r.svc.CreateIdea(ctx, args.Text)
	if err != nil {
		return nil, wrapError(err)
	}
	return &ideaResolver{idea: idea}, nil
}

func (r *Resolver) UpvoteIdea(ctx context.Context, args struct{ ID graphql.ID }) (*ideaResolver, error) {
	idea, err := r.svc.UpvoteIdea(ctx, string(args.ID))
	if err != nil {
		return nil, wrapError(err)
	}
	return &ideaResolver{idea: idea}, nil
}

type ideaResolver struct {
	idea *store.Idea
}

func (r *ideaResolver) ID() graphql.ID { return graphql.ID(r.idea.ID) }

func (r *ideaResolver) Text() string { return r.idea.Text }

func (r *ideaResolver) Upvotes() int32 { return int32(r.idea.Upvotes) }

func (r *ideaResolver) CreatedAt() string {
	return strconv.FormatInt(r.idea.CreatedAt.UnixMilli(), 10)
}
