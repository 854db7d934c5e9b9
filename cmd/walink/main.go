// Command walink prints a WhatsApp click-to-chat link without touching any
// database.
//
//	walink -phone 9876543210 -message "Hi there"
//	walink -phone 09876543210 -template subscription -field plan_name=Weekly -field amount=899
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"walink/internal/config"
	"walink/internal/logging"
	"walink/internal/phone"
	"walink/internal/templates"
	"walink/internal/wa"
)

type fieldFlags map[string]string

func (f fieldFlags) String() string { return fmt.Sprint(map[string]string(f)) }

func (f fieldFlags) Set(v string) error {
	k, val, ok := strings.Cut(v, "=")
	if !ok || strings.TrimSpace(k) == "" {
		return fmt.Errorf("field %q: want key=value", v)
	}
	f[strings.TrimSpace(k)] = val
	return nil
}

var templateAliases = map[string]string{
	"order":        templates.OrderConfirmation,
	"subscription": templates.SubscriptionConfirmation,
}

func main() {
	_ = godotenv.Load()
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "walink:", err)
		os.Exit(2)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("walink", flag.ContinueOnError)
	fs.SetOutput(stderr)
	rawPhone := fs.String("phone", "", "phone number, any formatting")
	message := fs.String("message", "", "message text")
	tmpl := fs.String("template", "", "render a built-in message: order or subscription")
	check := fs.Bool("check", false, "warn on stderr when the number looks invalid")
	fields := fieldFlags{}
	fs.Var(fields, "field", "template field key=value (repeatable)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *rawPhone == "" {
		return fmt.Errorf("-phone is required")
	}

	cfg, err := config.LoadLink()
	if err != nil {
		return err
	}
	logger := logging.InitTo(stderr, "walink", "text", "warn")

	text := *message
	if *tmpl != "" {
		name := *tmpl
		if alias, ok := templateAliases[name]; ok {
			name = alias
		}
		set := templates.New(templates.Boilerplate{
			Brand:          cfg.BrandName,
			SupportPhone:   cfg.SupportPhone,
			SupportEmail:   cfg.SupportEmail,
			CurrencySymbol: cfg.CurrencySymbol,
		})
		if text, err = set.Render(name, fields); err != nil {
			return err
		}
	}

	phones := phone.Normalizer{CountryCode: cfg.CountryCode}
	if *check {
		canonical := phones.Normalize(*rawPhone)
		if !(phone.Validator{Region: cfg.Region}).Valid(canonical) {
			logger.Warn("phone number looks invalid", "phone", canonical)
		}
	}

	b := wa.Builder{BaseURL: cfg.BaseURL, Phones: phones}
	_, err = fmt.Fprintln(stdout, b.Link(*rawPhone, text))
	return err
}
