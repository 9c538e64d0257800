package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
)

// Resource is a Ghost resource object such as a post or a page. Its schema
// is left to Ghost; only a few fields are interpreted by the client.
type Resource map[string]any

// ID returns the resource identifier, or "" if absent.
func (r Resource) ID() string {
	id, _ := r["id"].(string)
	return id
}

// UpdatedAt returns the updated_at timestamp Ghost uses for collision
// detection, or "" if absent.
func (r Resource) UpdatedAt() string {
	ts, _ := r["updated_at"].(string)
	return ts
}

// HasHTML reports whether the resource carries an html field.
func (r Resource) HasHTML() bool {
	_, ok := r["html"]
	return ok
}

func (r Resource) clone() Resource {
	out := make(Resource, len(r)+1)
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Resources performs admin operations on one resource collection.
type Resources struct {
	c    *Client
	name string
}

// Posts returns the admin posts collection.
func (c *Client) Posts() *Resources {
	return &Resources{c: c, name: "posts"}
}

// Pages returns the admin pages collection.
func (c *Client) Pages() *Resources {
	return &Resources{c: c, name: "pages"}
}

// Name returns the plural envelope name, e.g. "posts".
func (r *Resources) Name() string {
	return r.name
}

// Get fetches a single resource by id.
func (r *Resources) Get(ctx context.Context, id string, params url.Values) (Resource, error) {
	raw, err := r.c.Get(ctx, r.path(id), params)
	if err != nil {
		return nil, err
	}
	return r.single(raw)
}

// Create creates a resource and returns it as stored by Ghost. When
// payload has an html field, Ghost is asked to convert it with
// source=html.
func (r *Resources) Create(ctx context.Context, payload Resource) (Resource, error) {
	raw, err := r.c.Post(ctx, r.path(""), r.envelope(payload), writeParams(payload))
	if err != nil {
		return nil, err
	}
	return r.single(raw)
}

// Update replaces fields of resource id with payload.
//
// Ghost rejects writes whose updated_at does not match the stored value.
// When knownUpdatedAt is empty, Update first fetches the resource to read
// it. The read and the write are two separate requests: a change made by
// someone else in between is silently overwritten. Callers that need to
// detect that should pass the updated_at they last saw, in which case Ghost
// answers 409 (see IsUpdateCollision).
//
// payload itself is not modified.
func (r *Resources) Update(ctx context.Context, id string, payload Resource, knownUpdatedAt string) (Resource, error) {
	if knownUpdatedAt == "" {
		current, err := r.Get(ctx, id, nil)
		if err != nil {
			return nil, err
		}
		knownUpdatedAt = current.UpdatedAt()
		if knownUpdatedAt == "" {
			return nil, fmt.Errorf("%w: %s %s has no updated_at", ErrMalformedResponse, r.name, id)
		}
	}

	body := payload.clone()
	body["updated_at"] = knownUpdatedAt

	raw, err := r.c.Put(ctx, r.path(id), r.envelope(body), writeParams(body))
	if err != nil {
		return nil, err
	}
	return r.single(raw)
}

// Delete removes resource id.
func (r *Resources) Delete(ctx context.Context, id string) error {
	return r.c.Delete(ctx, r.path(id))
}

// path returns the collection or member path. Ghost redirects paths
// without a trailing slash, which would turn writes into GETs.
func (r *Resources) path(id string) string {
	if id == "" {
		return "admin/" + r.name + "/"
	}
	return "admin/" + r.name + "/" + url.PathEscape(id) + "/"
}

func (r *Resources) envelope(payload Resource) map[string][]Resource {
	return map[string][]Resource{r.name: {payload}}
}

// single extracts the first resource from the collection envelope.
func (r *Resources) single(raw json.RawMessage) (Resource, error) {
	if raw == nil {
		return nil, fmt.Errorf("%w: empty %s response", ErrMalformedResponse, r.name)
	}

	items, err := decodeEnvelope[Resource](raw, r.name)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 || items[0] == nil {
		return nil, fmt.Errorf("%w: no %s in response", ErrMalformedResponse, r.name)
	}
	return items[0], nil
}

// decodeEnvelope returns the array stored under name. Other members, such
// as "meta", are ignored.
func decodeEnvelope[T any](raw json.RawMessage, name string) ([]T, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("%w: decode %s envelope: %v", ErrMalformedResponse, name, err)
	}

	member, ok := envelope[name]
	if !ok {
		return nil, fmt.Errorf("%w: no %s in response", ErrMalformedResponse, name)
	}

	var items []T
	if err := json.Unmarshal(member, &items); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", ErrMalformedResponse, name, err)
	}
	return items, nil
}

// writeParams returns the query for a create or update.
func writeParams(payload Resource) url.Values {
	if !payload.HasHTML() {
		return nil
	}
	return url.Values{"source": {"html"}}
}
