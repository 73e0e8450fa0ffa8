package keyring

import (
	"fmt"
	"os"

	"github.com/99designs/keyring"
	sdkkeyring "github.com/cosmos/cosmos-sdk/crypto/keyring"
	"github.com/cosmos/cosmos-sdk/crypto/keys/secp256k1"
	cryptotypes "github.com/cosmos/cosmos-sdk/crypto/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Keyring holds the signing key of the swap sender.
type Keyring interface {
	// GetKey returns the private key
	GetKey() secp256k1.PrivKey

	// GetAddress returns the address
	GetAddress() sdk.AccAddress

	// GetPubKey returns the public key
	GetPubKey() cryptotypes.PubKey
}

type keyringImpl struct {
	key secp256k1.PrivKey
}

// Config locates a key in a file backed keyring.
type Config struct {
	Path     string
	Password string
	KeyName  string
}

const (
	keyringServiceName = "thorchain"

	KeyringPathEnvName     = "FINSDK_KEYRING_PATH"
	KeyringPasswordEnvName = "FINSDK_KEYRING_PASSWORD"
	KeyringKeyNameEnvName  = "FINSDK_KEYRING_KEY_NAME"
)

var _ Keyring = &keyringImpl{}

// ConfigFromEnv reads the keyring location from the environment.
func ConfigFromEnv() (Config, error) {
	config := Config{
		Path:     os.Getenv(KeyringPathEnvName),
		Password: os.Getenv(KeyringPasswordEnvName),
		KeyName:  os.Getenv(KeyringKeyNameEnvName),
	}

	if len(config.Path) == 0 {
		return Config{}, fmt.Errorf("keyring path is not set via %s", KeyringPathEnvName)
	}
	if len(config.Password) == 0 {
		return Config{}, fmt.Errorf("keyring password is not set via %s", KeyringPasswordEnvName)
	}
	if len(config.KeyName) == 0 {
		return Config{}, fmt.Errorf("keyring key name not set via %s", KeyringKeyNameEnvName)
	}
	return config, nil
}

// Open loads the secp256k1 key named config.KeyName from the file keyring at config.Path.
func Open(config Config) (Keyring, error) {
	openKeyring, err := keyring.Open(keyring.Config{
		AllowedBackends: []keyring.BackendType{
			keyring.FileBackend,
		},
		ServiceName:              keyringServiceName,
		FileDir:                  config.Path,
		KeychainTrustApplication: true,
		FilePasswordFunc: func(prompt string) (string, error) {
			return config.Password, nil
		},
	})
	if err != nil {
		return nil, fmt.Errorf("unable to open keyring [ %s ]: %w", config.Path, err)
	}

	// The cosmos keyring stores records under <name>.info.
	openRecord, err := openKeyring.Get(config.KeyName + ".info")
	if err != nil {
		return nil, fmt.Errorf("unable to get keyring record [ %s ]: %w", config.KeyName, err)
	}

	keyringRecord := new(sdkkeyring.Record)
	if err := keyringRecord.Unmarshal(openRecord.Data); err != nil {
		return nil, err
	}

	localRecord := keyringRecord.GetLocal()
	if localRecord == nil || localRecord.PrivKey == nil {
		return nil, fmt.Errorf("keyring record [ %s ] does not hold a local private key", config.KeyName)
	}

	privKey := secp256k1.PrivKey{}
	if err := privKey.Unmarshal(localRecord.PrivKey.Value); err != nil {
		return nil, err
	}

	return FromPrivKey(privKey), nil
}

// FromPrivKey wraps an in-memory private key.
func FromPrivKey(key secp256k1.PrivKey) Keyring {
	return &keyringImpl{key: key}
}

func (k keyringImpl) GetKey() secp256k1.PrivKey {
	return k.key
}

func (k keyringImpl) GetAddress() sdk.AccAddress {
	return sdk.AccAddress(k.key.PubKey().Address())
}

func (k keyringImpl) GetPubKey() cryptotypes.PubKey {
	return k.key.PubKey()
}
