// Package idcard issues and verifies student ID cards.
//
// A Service is built once from Config and carries the only sealing
// dependency of the process: one keyring, one claims builder and one
// cardseal codec. Issue turns a student record into a Card holding the
// sealed token and its QR code image. Verify turns a scanned token into a
// Scan whose outcome is one of valid, expired or invalid.
//
// # Usage
//
//	var cfg idcard.Config
//	config.MustLoad(&cfg)
//
//	svc, err := idcard.NewService(cfg,
//	    idcard.WithLogger(log),
//	    idcard.WithAuditStorage(audit.NewSlogStorage(log)),
//	)
//	if err != nil {
//	    return err
//	}
//
//	card, err := svc.Issue(ctx, rec)
//	scan := svc.Verify(idcard.WithScanner(ctx, "gate-2"), token)
//	fmt.Println(scan.Message)
package idcard
