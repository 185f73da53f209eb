package chat

import "context"

type Poster interface {
	PostMessage(ctx context.Context, msg Message) error
}
