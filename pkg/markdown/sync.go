package markdown

import (
	"context"
	"fmt"
	"net/url"

	"github.com/kjanat/ghost-blog/pkg/client"
)

// PostStore reads and writes posts. *client.Resources satisfies it.
type PostStore interface {
	Get(ctx context.Context, id string, params url.Values) (client.Resource, error)
	Update(ctx context.Context, id string, payload client.Resource, knownUpdatedAt string) (client.Resource, error)
}

// pullParams asks Ghost for the rendered HTML along with tags and authors.
var pullParams = url.Values{
	"formats": {"html"},
	"include": {"tags,authors"},
}

// Pull fetches post id and returns its body as Markdown.
func Pull(ctx context.Context, posts PostStore, id string) (string, error) {
	post, err := posts.Get(ctx, id, pullParams)
	if err != nil {
		return "", err
	}

	html, ok := post["html"].(string)
	if !ok {
		// Ghost returns null html for posts with no content.
		html = ""
	}

	return FromHTML(html)
}

// Push renders md as HTML and stores it as the body of post id. The post's
// current updated_at is fetched right before the write.
func Push(ctx context.Context, posts PostStore, id string, md []byte) (client.Resource, error) {
	html, err := ToHTML(md)
	if err != nil {
		return nil, err
	}

	post, err := posts.Update(ctx, id, client.Resource{"html": html}, "")
	if err != nil {
		return nil, fmt.Errorf("update post %s: %w", id, err)
	}
	return post, nil
}

var _ PostStore = (*client.Resources)(nil)
