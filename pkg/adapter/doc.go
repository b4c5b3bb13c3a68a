// Package adapter implements schema.Adapter on top of a REST resource API.
//
// Each model maps to a pluralized, snake-cased collection (see package
// resource) and every adapter call is exactly one HTTP request:
//
//	Create            POST   /dogs
//	Save              PUT    /dogs/{id}
//	UpdateAttributes  PUT    /dogs/{id}
//	Destroy           DELETE /dogs/{id}
//	Exists            HEAD   /dogs/{id}
//	Find              GET    /dogs/{id}
//	All               GET    /dogs?query={"where":...,"order":...}
//
// DestroyAll and Count fail with ErrNotSupported without touching the
// network. Non-2xx responses surface as *HTTPError; only Exists and Find
// turn a 404 into an ordinary "absent" result.
//
// The adapter is configured from schema settings:
//
//	s := &schema.Schema{Settings: map[string]any{
//	    "url":            "http://localhost:3000",
//	    "connectTimeout": 2000,
//	}}
//	if err := s.Connect(adapter.Initialize); err != nil {
//	    return err
//	}
//	id, err := s.Adapter.Create(ctx, "Dog", schema.Record{"name": "Rex"})
package adapter
