// Package v1 is the wire contract of the Warden lock service.
//
// The message and stub files are committed so the module builds without
// protoc on the path. Regenerating replaces them wholesale:
//
//go:generate protoc --go_out=. --go_opt=paths=source_relative --go-grpc_out=. --go-grpc_opt=paths=source_relative warden.proto
package v1
