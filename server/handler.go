package server

import (
	"net/http"

	"connectrpc.com/connect"
)

// RPC procedures of ParserService
const (
	ParseProcedure   = "/pyast.v1.ParserService/Parse"
	InspectProcedure = "/pyast.v1.ParserService/Inspect"
)

// NewHandler registers the ParserService procedures on a new mux
func NewHandler(service *ParserService, opts ...connect.HandlerOption) http.Handler {
	opts = append([]connect.HandlerOption{connect.WithCodec(&Codec{})}, opts...)
	mux := http.NewServeMux()
	mux.Handle(ParseProcedure, connect.NewUnaryHandler(ParseProcedure, service.Parse, opts...))
	mux.Handle(InspectProcedure, connect.NewUnaryHandler(InspectProcedure, service.Inspect, opts...))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return corsMiddleware(mux)
}

// corsMiddleware adds CORS headers for browser clients
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Connect-Protocol-Version, Connect-Timeout-Ms")
		w.Header().Set("Access-Control-Expose-Headers", "Content-Type, Connect-Protocol-Version")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
