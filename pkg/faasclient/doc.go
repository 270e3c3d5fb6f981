// Package faasclient provides the primary entry point for constructing a
// FaaS console client that implements the faas.Client interface.
//
// It layers endpoint normalization and the session cookie jar on top of the
// resource interfaces and types defined in the faas package. Most
// applications should import faasclient to build a client, then use the
// returned faas.Client to reach Functions(), Versions(), Executions() and
// Invoker().
//
// Quick start
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/fivetwenty-io/faas-client/pkg/faas"
//	  "github.com/fivetwenty-io/faas-client/pkg/faasclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//
//	  cli, err := faasclient.New(&faas.Config{
//	    APIEndpoint: "https://faas.example.com/api",
//	    Navigator: faas.NavigatorFunc(func(ctx context.Context, route string) {
//	      log.Printf("session expired, open %s", route)
//	    }),
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  // Login is never redirected: a wrong key comes back as a 401 error.
//	  if err := cli.Auth().Login(ctx, "my-api-key"); err != nil { log.Fatal(err) }
//
//	  functions, err := cli.Functions().List(ctx, faas.NewListParams().WithLimit(10))
//	  if err != nil { log.Fatal(err) }
//	  _ = functions
//
//	  // Invocations return the function's own status; only a network failure
//	  // is an error.
//	  result, err := cli.Invoker().Invoke(ctx, "fn-id", &faas.InvocationRequest{
//	    Method: "POST",
//	    Query:  faas.RawQuery("debug=1"),
//	    Body:   []byte(`{"name":"world"}`),
//	  })
//	  if err != nil { log.Fatal(err) }
//	  log.Println(result.Status, result.Body)
//	}
//
// # Errors
//
// Every management call fails with a *faas.Error. Its message is the
// backend's "error" string verbatim; validation messages follow the
// "<field>: <message>" form and can be split with faas.ParseFieldError.
//
// # Helpers
//
// NewWithEndpoint builds a client with defaults and NewWithAPIKey also logs
// in before returning.
package faasclient
