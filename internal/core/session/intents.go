// Copyright 2024 Google, LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package session

import "context"

// Intent is a user action delivered through Session.Dispatch.
type Intent interface {
	Name() string
	apply(ctx context.Context, s *Session) error
}

// QueryChange replaces the search query.
type QueryChange struct{ Query string }

func (QueryChange) Name() string { return "query-change" }

func (i QueryChange) apply(ctx context.Context, s *Session) error {
	s.search.SetQuery(ctx, i.Query)
	return nil
}

// Select toggles the detail view for ID.
type Select struct{ ID string }

func (Select) Name() string { return "select" }

func (i Select) apply(ctx context.Context, s *Session) error {
	s.selection.Select(ctx, i.ID)
	return nil
}

// HoverRating previews Value on the rating widget.
type HoverRating struct{ Value int }

func (HoverRating) Name() string { return "hover-rating" }

func (i HoverRating) apply(_ context.Context, s *Session) error {
	s.flow.Hover(i.Value)
	return nil
}

// LeaveRating ends the hover preview.
type LeaveRating struct{}

func (LeaveRating) Name() string { return "leave-rating" }

func (LeaveRating) apply(_ context.Context, s *Session) error {
	s.flow.Leave()
	return nil
}

// Rate clicks Value on the rating widget.
type Rate struct{ Value int }

func (Rate) Name() string { return "rate" }

func (i Rate) apply(_ context.Context, s *Session) error {
	s.flow.Rate(i.Value)
	return nil
}

// AddToWatched commits the open title with the pending rating.
type AddToWatched struct{}

func (AddToWatched) Name() string { return "add-to-watched" }

func (AddToWatched) apply(ctx context.Context, s *Session) error {
	return s.flow.Commit(ctx)
}

// Delete removes ID from the watched list.
type Delete struct{ ID string }

func (Delete) Name() string { return "delete" }

func (i Delete) apply(_ context.Context, s *Session) error {
	s.watched.Remove(i.ID)
	return nil
}

// Cancel closes the detail view.
type Cancel struct{}

func (Cancel) Name() string { return "cancel" }

func (Cancel) apply(_ context.Context, s *Session) error {
	s.flow.Cancel()
	return nil
}
