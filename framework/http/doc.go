// Package http provides Laravel-style request and response modeling on
// top of net/http: a Request wrapper with input/query/header helpers and
// body binding, a Response wrapper with JSON envelopes and status
// helpers, and a CookieJar that queues cookies Laravel-fashion until a
// response is sent.
//
//	req := http.NewRequest(r)
//	name := req.Input("name", "guest")
//
//	jar := http.NewCookieJar()
//	jar.Queue("theme", "dark", 120)
//
//	http.NewResponse(w).WithCookies(jar).Success(user)
//
// Routing and serving are out of scope; wire these wrappers into whatever
// handler stack hosts the application.
package http
