/*
Package consolesdk provides a client SDK for the admin console backend.

# Overview

The package has three layers:

  - Client: typed request/response wrappers over the backend HTTP surface
    (auth flows plus user CRUD), with every failure normalized to *APIError
    and the session cookie handled by a jar, the way a browser would.
  - Gates and state: the static route table (Routes, FindRoute), the
    three-state authorization check (Authorize), the chrome visibility gate
    (Visibility), the durable single-slot SessionStore, and the
    server-paginated Grid controller.
  - Console: the flow layer tying the client, session slot, notifier and
    navigator together, implementing the console's error-surfacing policy.

# Client

	client, err := consolesdk.NewClient("http://localhost:8080")
	if err != nil { ... }

	user, err := client.SignIn(ctx, "admin@example.com", "password")
	if err != nil {
		var apiErr *consolesdk.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == 401 {
			// bad credentials
		}
	}

Conflicts carry a field indicator so forms can attach the message to the
right input:

	err := client.CreateUser(ctx, req)
	if field, msg, ok := consolesdk.FieldOf(err); ok {
		form.SetError(field, msg)
	}

# Authorization

Authorize returns a three-state Decision rather than a boolean, so "nobody is
signed in" cannot be confused with "signed in but not allowed":

	switch consolesdk.Authorize(sessions.Get(), "/users") {
	case consolesdk.DecisionAllowed:
		// render
	case consolesdk.DecisionNoSession:
		// redirect to /access
	case consolesdk.DecisionDenied:
		// redirect to /dashboard
	}

# Grid

The Grid controller owns page, page size and sort model. Every state change
issues exactly one fetch; stale responses and responses arriving after Close
are discarded:

	grid := consolesdk.NewGrid(client.ReadUsers)
	grid.OnUpdate = func(s consolesdk.GridState) { render(s) }
	grid.Refresh(ctx)
	grid.SetPage(ctx, 1)
	grid.Close()
*/
package consolesdk
