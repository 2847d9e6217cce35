package apitest

/**
	Empty non-test file so that `go test ./... -coverpkg=./...` can build this package.
	See https://github.com/golang/go/issues/27333.
**/
