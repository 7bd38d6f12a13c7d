package db

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

type credenciales struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// resolverCredenciales toma usuario y clave de la base de datos del
// entorno o, en su defecto, del secreto de AWS Secrets Manager.
func resolverCredenciales(secretID string) (string, string, error) {
	username := os.Getenv("DB_USERNAME")
	password := os.Getenv("DB_PASSWORD")
	if username != "" && password != "" {
		return username, password, nil
	}

	cfg, err := awsconfig.LoadDefaultConfig(context.TODO())
	if err != nil {
		return "", "", fmt.Errorf("configuración AWS: %w", err)
	}
	secrets := secretsmanager.NewFromConfig(cfg)

	result, err := secrets.GetSecretValue(context.TODO(), &secretsmanager.GetSecretValueInput{
		SecretId:     aws.String(secretID),
		VersionStage: aws.String("AWSCURRENT"),
	})
	if err != nil {
		return "", "", fmt.Errorf("lectura del secreto %s: %w", secretID, err)
	}

	var cred credenciales
	if err := json.Unmarshal([]byte(*result.SecretString), &cred); err != nil {
		return "", "", fmt.Errorf("secreto %s mal formado: %w", secretID, err)
	}
	return cred.Username, cred.Password, nil
}
