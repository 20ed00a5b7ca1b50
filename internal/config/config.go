// Package config はゲートウェイと開発用サンドボックスの設定を読み込む。
//
// 設定は既定値、設定ファイル（config.yaml）、環境変数の順に上書きされる。
// 環境変数は CENSUDEX_ を接頭辞とし、キーの "." を "_" に置き換えた名前で指定する
// （例: backends.clients → CENSUDEX_BACKENDS_CLIENTS）。
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix は環境変数の接頭辞。
const EnvPrefix = "CENSUDEX"

// Config はゲートウェイの設定。
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Log       LogConfig       `mapstructure:"log"`
	Backends  BackendsConfig  `mapstructure:"backends"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Products  ProductsConfig  `mapstructure:"products"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

// ServerConfig はHTTPサーバーの設定。
type ServerConfig struct {
	Port           int      `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Addr はリッスンアドレスを返す。
func (s ServerConfig) Addr() string {
	return fmt.Sprintf(":%d", s.Port)
}

// LogConfig はログ出力の設定。
type LogConfig struct {
	Level  string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"required,oneof=json text"`
}

// BackendsConfig はバックエンドサービスの接続先。
// gRPCの接続先は host:port、認証サービスはHTTPのベースURLで指定する。
type BackendsConfig struct {
	Clients     string        `mapstructure:"clients" validate:"required,hostname_port"`
	Orders      string        `mapstructure:"orders" validate:"required,hostname_port"`
	Products    string        `mapstructure:"products" validate:"required,hostname_port"`
	Images      string        `mapstructure:"images" validate:"required,hostname_port"`
	Auth        string        `mapstructure:"auth" validate:"required,url"`
	AuthTimeout time.Duration `mapstructure:"auth_timeout" validate:"gte=0"`
}

// AuthConfig は認可の設定。
type AuthConfig struct {
	// ElevatedRoles は注文状態の更新を許可するロール。
	ElevatedRoles []string `mapstructure:"elevated_roles" validate:"required,min=1,dive,required"`
}

// ProductsConfig は商品APIの挙動の設定。
type ProductsConfig struct {
	// LegacyEditNotFound が true の場合、商品更新の名前重複以外の失敗をすべて404として返す。
	LegacyEditNotFound bool `mapstructure:"legacy_edit_not_found"`
}

// TelemetryConfig はトレースの設定。
type TelemetryConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	ServiceName string `mapstructure:"service_name" validate:"required_if=Enabled true"`
}

// Load はゲートウェイの設定を読み込んで検証する。
// path が空の場合は ./config.yaml と ./configs/config.yaml を探し、見つからなければ既定値と環境変数のみを使う。
func Load(path string) (*Config, error) {
	vip, err := newViper(path)
	if err != nil {
		return nil, err
	}

	vip.SetDefault("server.port", 8080)
	vip.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})
	vip.SetDefault("log.level", "info")
	vip.SetDefault("log.format", "json")
	vip.SetDefault("backends.clients", "localhost:5000")
	vip.SetDefault("backends.orders", "localhost:5000")
	vip.SetDefault("backends.products", "localhost:5000")
	vip.SetDefault("backends.images", "localhost:5000")
	vip.SetDefault("backends.auth", "http://localhost:5001")
	vip.SetDefault("backends.auth_timeout", 0)
	vip.SetDefault("auth.elevated_roles", []string{"admin"})
	vip.SetDefault("products.legacy_edit_not_found", false)
	vip.SetDefault("telemetry.enabled", false)
	vip.SetDefault("telemetry.service_name", "censudex-gateway")

	var cfg Config
	if err := decode(vip, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Sandbox は開発用サンドボックスの設定。
type Sandbox struct {
	GRPCPort int    `mapstructure:"grpc_port" validate:"required,gt=0,lt=65536"`
	HTTPPort int    `mapstructure:"http_port" validate:"required,gt=0,lt=65536"`
	DBPath   string `mapstructure:"db_path" validate:"required"`
	// PublicURL は画像のURLを組み立てるときのHTTPサーバーの公開URL。
	PublicURL string        `mapstructure:"public_url" validate:"required,url"`
	JWTSecret string        `mapstructure:"jwt_secret" validate:"required,min=16"`
	TokenTTL  time.Duration `mapstructure:"token_ttl" validate:"gt=0"`
	// Admin は起動時に作成する管理者アカウント。
	Admin SandboxAdmin `mapstructure:"admin"`
	Log   LogConfig    `mapstructure:"log"`
}

// SandboxAdmin は起動時に作成する管理者アカウント。
type SandboxAdmin struct {
	Email    string `mapstructure:"email" validate:"omitempty,email"`
	Password string `mapstructure:"password" validate:"required_with=Email"`
}

// LoadSandbox はサンドボックスの設定を読み込んで検証する。
// キーは sandbox. 以下に置く（例: CENSUDEX_SANDBOX_GRPC_PORT）。
func LoadSandbox(path string) (*Sandbox, error) {
	vip, err := newViper(path)
	if err != nil {
		return nil, err
	}

	vip.SetDefault("sandbox.grpc_port", 5000)
	vip.SetDefault("sandbox.http_port", 5001)
	vip.SetDefault("sandbox.db_path", "sandbox.db")
	vip.SetDefault("sandbox.public_url", "http://localhost:5001")
	vip.SetDefault("sandbox.jwt_secret", "dev-secret-key-change-me")
	vip.SetDefault("sandbox.token_ttl", time.Hour)
	vip.SetDefault("sandbox.admin.email", "admin@censudex.local")
	vip.SetDefault("sandbox.admin.password", "admin")
	vip.SetDefault("sandbox.log.level", "info")
	vip.SetDefault("sandbox.log.format", "text")

	var root struct {
		Sandbox Sandbox `mapstructure:"sandbox"`
	}
	if err := decode(vip, &root); err != nil {
		return nil, err
	}
	return &root.Sandbox, nil
}

// LoadDotEnv はカレントディレクトリの .env を環境変数に読み込む。
// ファイルが存在しない場合は何もしない。既に設定されている環境変数は上書きしない。
func LoadDotEnv(files ...string) error {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf(".envの読み込みに失敗: %w", err)
	}
	return nil
}

func newViper(path string) (*viper.Viper, error) {
	vip := viper.New()
	if path != "" {
		vip.SetConfigFile(path)
	} else {
		vip.SetConfigName("config")
		vip.AddConfigPath("./configs")
		vip.AddConfigPath(".")
	}
	vip.SetConfigType("yaml")
	vip.SetEnvPrefix(EnvPrefix)
	vip.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	vip.AutomaticEnv()

	if err := vip.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("設定ファイルの読み込みに失敗: %w", err)
		}
	}
	return vip, nil
}

func decode(vip *viper.Viper, out any) error {
	if err := vip.Unmarshal(out); err != nil {
		return fmt.Errorf("設定のデコードに失敗: %w", err)
	}
	if err := validator.New().Struct(out); err != nil {
		return fmt.Errorf("設定の検証に失敗: %w", err)
	}
	return nil
}
