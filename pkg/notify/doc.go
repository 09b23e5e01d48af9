// Package notify delivers session lifecycle notices to users: a warning
// when a session is about to expire for inactivity and a notice once it has
// been ended.
//
// The Notifier interface abstracts the channel. LogNotifier writes notices
// to a structured logger, EmailNotifier sends them through an EmailSender,
// and Multi fans one notice out to several channels. Two EmailSender
// implementations ship with the package: a Postmark client for production
// and DevSender, which writes emails to disk for local development.
//
// # Usage
//
//	import "github.com/dmitrymomot/sessionguard/pkg/notify"
//
//	sender := notify.MustNewPostmarkClient(cfg)
//	notifier := notify.NewMulti(
//	    notify.NewLogNotifier(logger),
//	    notify.NewEmailNotifier(sender, notify.WithAppName("Acme")),
//	)
//
//	err := notifier.NotifyWarning(ctx, notify.WarningNotice{
//	    Email:     "user@example.com",
//	    SessionID: "sess-123",
//	    Remaining: 5 * time.Minute,
//	})
//
// During development swap the sender for a DevSender:
//
//	sender := notify.NewDevSender("./email-output")
//
// Each sent email becomes a timestamped HTML file plus a JSON metadata file
// in the output directory.
package notify
