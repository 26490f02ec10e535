package config

import "github.com/aws/aws-sdk-go-v2/service/s3"

type ServerConfig struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	BasePath string `yaml:"base_path"`
}

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type S3Config struct {
	Bucket   string `yaml:"bucket"`
	Client   *s3.Client
	Region   string `yaml:"region"`
	Endpoint string `yaml:"endpoint"`
	Local    bool   `yaml:"local"`
	Enabled  bool   `yaml:"enabled"`
}

type JWTConfig struct {
	SecretKey       string `yaml:"secret_key"`
	AccessTokenTTL  string `yaml:"access_token_ttl"`
	RefreshTokenTTL string `yaml:"refresh_token_ttl"`
}

type AdminConfig struct {
	AdminToken string `yaml:"admin_token"`
}

type TTL struct {
	ProductCache int `yaml:"product_cache"` // секунды
	DownloadLink int `yaml:"download_link"` // секунды, 0 = бессрочная ссылка
	PresignedURL int `yaml:"presigned_url"` // секунды
}

// WatermarkConfig : настройки водяного знака и временных файлов
type WatermarkConfig struct {
	Text          string  `yaml:"text"`
	TmpDir        string  `yaml:"tmp_dir"`
	ImageFontPath string  `yaml:"image_font_path"`
	VideoFontPath string  `yaml:"video_font_path"`
	Scale         float64 `yaml:"scale"`       // доля меньшей стороны изображения
	MinPointSize  int     `yaml:"min_pt"`      // нижняя граница размера шрифта, px
	MaxPointSize  int     `yaml:"max_pt"`      // верхняя граница размера шрифта, px
	VideoScale    float64 `yaml:"video_scale"` // доля высоты кадра
	ToolTimeout   string  `yaml:"tool_timeout"`
}
