package main

import (
	"context"

	"hello-actions/internal/middleware"
	"hello-actions/pkg/server"

	awslambda "github.com/aws/aws-lambda-go/lambda"
)

var handler awslambda.Handler

func init() {
	container, err := server.GetManager().GetContainer(context.Background())
	if err != nil {
		panic("Failed to initialize container: " + err.Error())
	}

	handler = middleware.Chain(
		awslambda.NewHandler(container.ConductorHandler.HandleInvoke),
		middleware.Standard(container.Logger, "hello_conductor")...,
	)
}

func main() {
	awslambda.StartWithOptions(handler, awslambda.WithEnableSIGTERM(server.GetManager().Shutdown))
}
