package table

import (
	"context"
	"fmt"

	admin "github.com/paulvitic/members-admin"
)

type commandHandler struct {
	controller *Controller
}

// Commands exposes the controller operations to a CommandBus.
func (c *Controller) Commands() admin.CommandHandler {
	return &commandHandler{c}
}

func (h *commandHandler) SubscribedTo() map[string]admin.HandleCommand {
	c := h.controller
	return map[string]admin.HandleCommand{
		admin.CommandType(Search{}): func(ctx context.Context, cmd admin.Command) error {
			body, err := commandBody[Search](cmd)
			if err != nil {
				return err
			}
			return c.Search(ctx, body.Text)
		},
		admin.CommandType(Sort{}): func(ctx context.Context, cmd admin.Command) error {
			body, err := commandBody[Sort](cmd)
			if err != nil {
				return err
			}
			return c.SortBy(ctx, body.Key)
		},
		admin.CommandType(GoToPage{}): func(ctx context.Context, cmd admin.Command) error {
			body, err := commandBody[GoToPage](cmd)
			if err != nil {
				return err
			}
			_, err = c.GoToPage(ctx, body.Page)
			return err
		},
		admin.CommandType(NextPage{}): func(ctx context.Context, cmd admin.Command) error {
			_, err := c.NextPage(ctx)
			return err
		},
		admin.CommandType(PrevPage{}): func(ctx context.Context, cmd admin.Command) error {
			_, err := c.PrevPage(ctx)
			return err
		},
		admin.CommandType(ToggleRow{}): func(ctx context.Context, cmd admin.Command) error {
			body, err := commandBody[ToggleRow](cmd)
			if err != nil {
				return err
			}
			return c.ToggleRow(ctx, body.ID)
		},
		admin.CommandType(ToggleAllOnPage{}): func(ctx context.Context, cmd admin.Command) error {
			return c.ToggleAllOnPage(ctx)
		},
		admin.CommandType(DeleteRows{}): func(ctx context.Context, cmd admin.Command) error {
			body, err := commandBody[DeleteRows](cmd)
			if err != nil {
				return err
			}
			_, err = c.DeleteRows(ctx, body.IDs)
			return err
		},
		admin.CommandType(DeleteSelected{}): func(ctx context.Context, cmd admin.Command) error {
			_, err := c.DeleteSelected(ctx)
			return err
		},
		admin.CommandType(BeginEditing{}): func(ctx context.Context, cmd admin.Command) error {
			body, err := commandBody[BeginEditing](cmd)
			if err != nil {
				return err
			}
			return c.BeginEdit(ctx, body.ID)
		},
		admin.CommandType(UpdateField{}): func(ctx context.Context, cmd admin.Command) error {
			body, err := commandBody[UpdateField](cmd)
			if err != nil {
				return err
			}
			return c.UpdateField(ctx, body.Field, body.Value)
		},
		admin.CommandType(CommitEdit{}): func(ctx context.Context, cmd admin.Command) error {
			_, err := c.CommitEdit(ctx)
			return err
		},
		admin.CommandType(CancelEdit{}): func(ctx context.Context, cmd admin.Command) error {
			return c.CancelEdit(ctx)
		},
		admin.CommandType(Reload{}): func(ctx context.Context, cmd admin.Command) error {
			return c.Load(ctx)
		},
	}
}

type queryHandler struct {
	controller *Controller
}

// Queries exposes the page view and load status to a QueryBus.
func (c *Controller) Queries() admin.QueryHandler {
	return &queryHandler{c}
}

func (h *queryHandler) SubscribedTo() map[string]admin.HandleQuery {
	c := h.controller
	return map[string]admin.HandleQuery{
		admin.QueryType(CurrentPage{}): func(ctx context.Context, query admin.Query) (admin.QueryResponse, error) {
			view := c.View()
			return admin.NewPagedQueryResponse(view, view.Matching, view.Page-1, view.PageSize), nil
		},
		admin.QueryType(LoadStatus{}): func(ctx context.Context, query admin.Query) (admin.QueryResponse, error) {
			return admin.NewQueryResponse(c.Status()), nil
		},
	}
}

func commandBody[T any](cmd admin.Command) (T, error) {
	switch body := cmd.Body().(type) {
	case T:
		return body, nil
	case *T:
		if body != nil {
			return *body, nil
		}
	}
	var zero T
	return zero, fmt.Errorf("unexpected %T body for %s", cmd.Body(), cmd.Type())
}
