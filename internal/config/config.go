package config

import (
	"os"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/go-yaml/yaml"
)

type Config struct {
	Marketplace Marketplace `yaml:"marketplace"`
	Server      Server      `yaml:"server"`
}

type Marketplace struct {
	FQDN         string        `yaml:"fqdn"`
	PrivateKey   string        `yaml:"privatekey"`
	Registration string        `yaml:"registration"` // open, close
	SessionTTL   time.Duration `yaml:"sessionTTL"`
	ChallengeTTL time.Duration `yaml:"challengeTTL"`

	// ---
	ServerAddress string
}

type Server struct {
	PostgresDsn          string        `yaml:"postgresDsn"`
	RedisAddr            string        `yaml:"redisAddr"`
	RedisDB              int           `yaml:"redisDB"`
	MemcachedAddr        string        `yaml:"memcachedAddr"`
	EnableTrace          bool          `yaml:"enableTrace"`
	TraceEndpoint        string        `yaml:"traceEndpoint"`
	DataProtectorGateway string        `yaml:"dataProtectorGateway"`
	VerifyProtectedData  bool          `yaml:"verifyProtectedData"`
	RequireProof         bool          `yaml:"requireProof"`
	ListingCacheTTL      time.Duration `yaml:"listingCacheTTL"`
}

func Load(path string) (Config, error) {

	file, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer file.Close()

	var config Config
	err = yaml.NewDecoder(file).Decode(&config)
	if err != nil {
		return Config{}, err
	}

	key, err := crypto.HexToECDSA(strings.TrimPrefix(config.Marketplace.PrivateKey, "0x"))
	if err != nil {
		return Config{}, err
	}
	config.Marketplace.ServerAddress = strings.ToLower(crypto.PubkeyToAddress(key.PublicKey).Hex())

	if config.Marketplace.SessionTTL == 0 {
		config.Marketplace.SessionTTL = 24 * time.Hour
	}
	if config.Marketplace.ChallengeTTL == 0 {
		config.Marketplace.ChallengeTTL = 5 * time.Minute
	}
	if config.Server.ListingCacheTTL == 0 {
		config.Server.ListingCacheTTL = 10 * time.Second
	}

	return config, nil
}
