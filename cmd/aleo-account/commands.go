package main

import (
	"bufio"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"syscall"

	"github.com/urfave/cli"
	"golang.org/x/term"

	"github.com/suffix-labs/aleo-account/pkg/api"
)

// keyInfo is printed by every command that produces a private key.
type keyInfo struct {
	PrivateKey string `json:"private_key"`
	ViewKey    string `json:"view_key"`
	Address    string `json:"address"`
	Ciphertext string `json:"ciphertext,omitempty"`
}

func printJSON(v interface{}) {
	b, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		fatal(err)
	}
	fmt.Println(string(b))
}

func describeKey(privateKey string) (*keyInfo, error) {
	vk, err := api.ViewKey(privateKey)
	if err != nil {
		return nil, err
	}
	addr, err := api.Address(privateKey)
	if err != nil {
		return nil, err
	}
	return &keyInfo{PrivateKey: privateKey, ViewKey: vk, Address: addr}, nil
}

// readPassword reads a secret from the terminal without echo. When stdin is
// not a terminal a single line is read instead.
func readPassword(text string) (string, error) {
	// The variable syscall.Stdin is of a different type in the Windows API
	// that's why we need the explicit cast.
	fd := int(syscall.Stdin) // nolint:unconvert
	if !term.IsTerminal(fd) {
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return "", err
		}
		return strings.TrimRight(line, "\r\n"), nil
	}

	fmt.Fprint(os.Stderr, text)
	pw, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	return string(pw), err
}

// readNewPassword asks twice when attached to a terminal.
func readNewPassword() (string, error) {
	pw, err := readPassword("Enter password: ")
	if err != nil {
		return "", err
	}
	if !term.IsTerminal(int(syscall.Stdin)) { // nolint:unconvert
		return pw, nil
	}

	confirm, err := readPassword("Confirm password: ")
	if err != nil {
		return "", err
	}
	if pw != confirm {
		return "", errors.New("passwords do not match")
	}
	return pw, nil
}

// argOrStdin returns the first positional argument, or all of stdin when
// there is none.
func argOrStdin(ctx *cli.Context) (string, error) {
	if ctx.NArg() > 0 {
		return ctx.Args().First(), nil
	}
	b, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}

// requireArg returns the first positional argument or shows command help.
func requireArg(ctx *cli.Context, cmd string) (string, error) {
	if ctx.NArg() == 0 {
		_ = cli.ShowCommandHelp(ctx, cmd)
		return "", fmt.Errorf("missing argument")
	}
	return ctx.Args().First(), nil
}

var newCommand = cli.Command{
	Name:     "new",
	Category: "Keys",
	Usage:    "Create a new private key.",
	Description: `
	Sample a fresh private key and print it with its view key and address.
	With --encrypt the key is also sealed under a password read from the
	terminal.`,
	Flags: []cli.Flag{
		cli.BoolFlag{
			Name:  "encrypt",
			Usage: "also print the key encrypted under a password",
		},
	},
	Action: newKey,
}

func newKey(ctx *cli.Context) error {
	if !ctx.Bool("encrypt") {
		pk, err := api.NewPrivateKey()
		if err != nil {
			return err
		}
		info, err := describeKey(pk)
		if err != nil {
			return err
		}
		printJSON(info)
		return nil
	}

	secret, err := readNewPassword()
	if err != nil {
		return err
	}
	pk, ct, err := api.NewEncryptedPrivateKey(secret, cfg.KDF)
	if err != nil {
		return err
	}
	info, err := describeKey(pk)
	if err != nil {
		return err
	}
	info.Ciphertext = ct
	printJSON(info)
	return nil
}

var fromSeedCommand = cli.Command{
	Name:      "from-seed",
	Category:  "Keys",
	Usage:     "Derive a private key from a 32-byte hex seed.",
	ArgsUsage: "seed",
	Action:    fromSeed,
}

func fromSeed(ctx *cli.Context) error {
	arg, err := requireArg(ctx, "from-seed")
	if err != nil {
		return err
	}
	seed, err := hex.DecodeString(arg)
	if err != nil {
		return fmt.Errorf("seed is not hex: %w", err)
	}
	pk, err := api.PrivateKeyFromSeed(seed)
	if err != nil {
		return err
	}
	info, err := describeKey(pk)
	if err != nil {
		return err
	}
	printJSON(info)
	return nil
}

var fromMnemonicCommand = cli.Command{
	Name:     "from-mnemonic",
	Category: "Keys",
	Usage:    "Restore a private key from its 24-word mnemonic.",
	Description: `
	The mnemonic is read from the terminal without echo, or from stdin when
	stdin is not a terminal.`,
	Action: fromMnemonic,
}

func fromMnemonic(_ *cli.Context) error {
	words, err := readPassword("Enter mnemonic: ")
	if err != nil {
		return err
	}
	pk, err := api.PrivateKeyFromMnemonic(words)
	if err != nil {
		return err
	}
	info, err := describeKey(pk)
	if err != nil {
		return err
	}
	printJSON(info)
	return nil
}

var mnemonicCommand = cli.Command{
	Name:      "mnemonic",
	Category:  "Keys",
	Usage:     "Print the 24-word mnemonic of a private key.",
	ArgsUsage: "private_key",
	Action:    mnemonic,
}

func mnemonic(ctx *cli.Context) error {
	pk, err := requireArg(ctx, "mnemonic")
	if err != nil {
		return err
	}
	words, err := api.Mnemonic(pk)
	if err != nil {
		return err
	}
	fmt.Println(words)
	return nil
}

var viewKeyCommand = cli.Command{
	Name:      "view-key",
	Category:  "Keys",
	Usage:     "Derive the view key of a private key.",
	ArgsUsage: "private_key",
	Action:    viewKey,
}

func viewKey(ctx *cli.Context) error {
	pk, err := requireArg(ctx, "view-key")
	if err != nil {
		return err
	}
	vk, err := api.ViewKey(pk)
	if err != nil {
		return err
	}
	fmt.Println(vk)
	return nil
}

var addressCommand = cli.Command{
	Name:      "address",
	Category:  "Keys",
	Usage:     "Derive the address of a private key or view key.",
	ArgsUsage: "private_key | view_key",
	Action:    address,
}

func address(ctx *cli.Context) error {
	key, err := requireArg(ctx, "address")
	if err != nil {
		return err
	}

	var addr string
	if strings.HasPrefix(key, "AViewKey1") {
		addr, err = api.AddressFromViewKey(key)
	} else {
		addr, err = api.Address(key)
	}
	if err != nil {
		return err
	}
	fmt.Println(addr)
	return nil
}

var encryptCommand = cli.Command{
	Name:      "encrypt",
	Category:  "Keys",
	Usage:     "Encrypt a private key under a password.",
	ArgsUsage: "private_key",
	Description: `
	The password is read from the terminal. The argon2id cost is taken from
	the kdf section of the config file.`,
	Action: encrypt,
}

func encrypt(ctx *cli.Context) error {
	pk, err := requireArg(ctx, "encrypt")
	if err != nil {
		return err
	}
	secret, err := readNewPassword()
	if err != nil {
		return err
	}
	ct, err := api.EncryptPrivateKey(pk, secret, cfg.KDF)
	if err != nil {
		return err
	}
	fmt.Println(ct)
	return nil
}

var decryptCommand = cli.Command{
	Name:      "decrypt",
	Category:  "Keys",
	Usage:     "Decrypt a private key ciphertext.",
	ArgsUsage: "ciphertext",
	Action:    decrypt,
}

func decrypt(ctx *cli.Context) error {
	ct, err := requireArg(ctx, "decrypt")
	if err != nil {
		return err
	}
	secret, err := readPassword("Enter password: ")
	if err != nil {
		return err
	}
	pk, err := api.PrivateKeyFromCiphertext(ct, secret)
	if err != nil {
		return err
	}
	info, err := describeKey(pk)
	if err != nil {
		return err
	}
	printJSON(info)
	return nil
}

var signCommand = cli.Command{
	Name:     "sign",
	Category: "Signatures",
	Usage:    "Sign a message with a private key.",
	Flags: []cli.Flag{
		cli.StringFlag{
			Name:  "key",
			Usage: "the private key to sign with",
		},
		cli.StringFlag{
			Name:  "msg",
			Usage: "the message to sign",
		},
	},
	Action: sign,
}

func sign(ctx *cli.Context) error {
	if !ctx.IsSet("key") || !ctx.IsSet("msg") {
		_ = cli.ShowCommandHelp(ctx, "sign")
		return errors.New("--key and --msg are required")
	}
	sig, err := api.SignMessage(ctx.String("key"), []byte(ctx.String("msg")))
	if err != nil {
		return err
	}
	fmt.Println(sig)
	return nil
}

var verifyCommand = cli.Command{
	Name:     "verify",
	Category: "Signatures",
	Usage:    "Verify a message signature against an address.",
	Flags: []cli.Flag{
		cli.StringFlag{
			Name:  "addr",
			Usage: "the address of the signer",
		},
		cli.StringFlag{
			Name:  "msg",
			Usage: "the signed message",
		},
		cli.StringFlag{
			Name:  "sig",
			Usage: "the signature",
		},
	},
	Action: verify,
}

func verify(ctx *cli.Context) error {
	if !ctx.IsSet("addr") || !ctx.IsSet("msg") || !ctx.IsSet("sig") {
		_ = cli.ShowCommandHelp(ctx, "verify")
		return errors.New("--addr, --msg and --sig are required")
	}
	ok, err := api.VerifyMessage(
		ctx.String("addr"), []byte(ctx.String("msg")), ctx.String("sig"),
	)
	if err != nil {
		return err
	}
	printJSON(struct {
		Valid bool `json:"valid"`
	}{ok})
	return nil
}
