// Package mockapi is an in-memory REST resource server used to exercise
// the adapter in tests and local development.
//
// Each configured resource (by default users, posts and dogs) is a
// Collection of records keyed by an auto-incrementing integer id:
//
//	GET    /dogs          list; optional ?query={"where":{...},"order":"name DESC"}
//	POST   /dogs          create, 201 with the stored record
//	GET    /dogs/{id}     fetch, 404 when absent
//	HEAD   /dogs/{id}     existence check, 404 when absent
//	PUT    /dogs/{id}     merge fields into the record, 404 when absent
//	DELETE /dogs/{id}     remove, 404 when absent
//
// POST /_admin/reset empties every collection and GET /_admin/state reports
// counts. State lives in a Store owned by whoever builds the Server, so
// tests can reset it between cases:
//
//	srv := mockapi.NewServer(mockapi.ServerConfig{})
//	ts := httptest.NewServer(srv.Handler())
//	defer ts.Close()
//	t.Cleanup(srv.Reset)
package mockapi
