package admin

import (
	"net/http"
	"reflect"

	"github.com/gorilla/mux"
)

// HttpMethod represents HTTP methods as constants
type HttpMethod string

const (
	GET     HttpMethod = "GET"
	POST    HttpMethod = "POST"
	PUT     HttpMethod = "PUT"
	DELETE  HttpMethod = "DELETE"
	PATCH   HttpMethod = "PATCH"
	OPTIONS HttpMethod = "OPTIONS"
	HEAD    HttpMethod = "HEAD"
)

// Endpoint is bound to a router path. Its handlers are discovered by method
// name: Get, Post, Put, Delete, Patch, Options and Head with the signature
// func(http.ResponseWriter, *http.Request).
type Endpoint interface {
	// Path returns the endpoint's URL path
	Path() string
}

// BindEndpoint registers every discovered handler of endpoint on router and
// returns the methods it bound.
func BindEndpoint(endpoint Endpoint, router *mux.Router) []HttpMethod {
	path := endpoint.Path()
	handlers := requestHandlers(endpoint)

	bound := make([]HttpMethod, 0, len(handlers))
	for method, methodName := range handlers {
		currentMethodName := methodName

		handler := func(w http.ResponseWriter, r *http.Request) {
			callHandlerMethod(endpoint, currentMethodName, w, r)
		}

		router.HandleFunc(path, handler).Methods(string(method))
		bound = append(bound, method)
	}
	return bound
}

func requestHandlers(endpoint Endpoint) map[HttpMethod]string {
	typ := reflect.TypeOf(endpoint)

	handlers := make(map[HttpMethod]string)

	methodMap := map[string]HttpMethod{
		"Get":     GET,
		"Post":    POST,
		"Put":     PUT,
		"Delete":  DELETE,
		"Patch":   PATCH,
		"Options": OPTIONS,
		"Head":    HEAD,
	}

	for i := 0; i < typ.NumMethod(); i++ {
		method := typ.Method(i)
		if httpMethod, exists := methodMap[method.Name]; exists && isValidHandlerSignature(method.Type) {
			handlers[httpMethod] = method.Name
		}
	}

	return handlers
}

func callHandlerMethod(endpoint any, methodName string, w http.ResponseWriter, r *http.Request) {
	handlerMethod := reflect.ValueOf(endpoint).MethodByName(methodName)

	if !handlerMethod.IsValid() {
		http.Error(w, "Handler method not found", http.StatusInternalServerError)
		return
	}

	handlerMethod.Call([]reflect.Value{
		reflect.ValueOf(w),
		reflect.ValueOf(r),
	})
}

// isValidHandlerSignature checks if a method has the correct HTTP handler signature
func isValidHandlerSignature(methodType reflect.Type) bool {
	// receiver, http.ResponseWriter, *http.Request
	if methodType.NumIn() != 3 {
		return false
	}

	if methodType.NumOut() != 0 {
		return false
	}

	responseWriterType := reflect.TypeOf((*http.ResponseWriter)(nil)).Elem()
	requestType := reflect.TypeOf((*http.Request)(nil))

	return methodType.In(1).Implements(responseWriterType) &&
		methodType.In(2) == requestType
}
