// Package client provides a client for the Ghost Content and Admin APIs.
//
// Every request path starts with the API surface it targets:
//   - "content/..." paths are authenticated with the Content API key,
//     sent as the key query parameter
//   - "admin/..." paths are authenticated with a short-lived token signed
//     with the Admin API key secret, sent as "Authorization: Ghost <token>"
//
// Any other path is rejected with an InvalidPathError before a request is
// made.
//
// # Basic Usage
//
//	c, err := client.New(client.Config{
//	    BaseURL:    "https://blog.example.com",
//	    ContentKey: os.Getenv("GHOST_CONTENT_API_KEY"),
//	    AdminKey:   os.Getenv("GHOST_ADMIN_API_KEY"),
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Read published posts
//	raw, err := c.Get(ctx, "content/posts/", url.Values{"limit": {"5"}})
//
//	// Create a draft from HTML
//	post, err := c.Posts().Create(ctx, client.Resource{
//	    "title": "Hello",
//	    "html":  "<p>World</p>",
//	})
//
// # Error Handling
//
// Failures are reported with typed errors:
//
//	_, err := c.Posts().Update(ctx, id, client.Resource{"title": "New"}, "")
//	if err != nil {
//	    switch {
//	    case client.IsConfigurationError(err):
//	        // Missing or malformed base URL or keys
//	    case client.IsTransportError(err):
//	        // Ghost could not be reached
//	    case client.IsUpdateCollision(err):
//	        // Someone else saved the post first
//	    case client.IsAPIError(err):
//	        // Any other non-2xx response
//	    }
//	}
//
// The client never retries. Retry policy belongs to the caller.
package client
