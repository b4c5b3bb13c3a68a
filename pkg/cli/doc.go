// Package cli provides the command-line interface for restapi.
//
// Commands:
//   - serve: Run the in-memory resource server in the foreground
//   - find: Fetch one record (GET /<resource>/<id>)
//   - list: List records, with --where and --order (GET /<resource>?query=...)
//   - create: Create a record and print the assigned id (POST /<resource>)
//   - update: Update attributes of a record (PUT /<resource>/<id>)
//   - delete: Delete a record (DELETE /<resource>/<id>)
//   - exists: Check whether a record exists (HEAD /<resource>/<id>)
//   - version: Show restapi version
//
// Model commands go through the REST adapter, so a model argument such as
// Dog is mapped to the dogs resource exactly as an application would.
//
// Usage:
//
//	restapi serve --port 3000 --seed seed.yaml
//	restapi create Dog '{"name":"Rex"}'
//	restapi list Dog --where '{"name":"Rex"}' --order "name DESC"
//	restapi find Dog 1 --url http://localhost:3000
package cli
