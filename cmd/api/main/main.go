//go:build lambda
// +build lambda

package main

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
	"github.com/davecgh/go-spew/spew"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	_ "github.com/kinlabs/kin-paymaster/docs"
	"github.com/kinlabs/kin-paymaster/internal/logger"
	"github.com/kinlabs/kin-paymaster/internal/server"
)

// @title           Kin Royalty Paymaster API
// @version         1.0
// @description     Royalty-forwarding paymaster service for relayer-submitted vault operations

// @contact.name   API Support
// @contact.email  support@kinlabs.io

// @host      localhost:8000
// @BasePath  /api/v1

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
// @description Relayer API key issued at registration.

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

var ginLambda *ginadapter.GinLambda

func init() {
	logger.InitLogger()

	r := gin.Default()

	server.InitializeHandlers()
	server.InitializeRoutes(r)

	ginLambda = ginadapter.New(r)
}

func Handler(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	logger.Debug("Received Lambda request",
		zap.String("path", req.Path),
		zap.Any("request", spew.Sdump(req)),
	)

	return ginLambda.ProxyWithContext(ctx, req)
}

func main() {
	defer logger.Sync()
	lambda.Start(Handler)
}
