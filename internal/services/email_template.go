package services

import (
	"fmt"
	"strings"

	"github.com/samjsmart/gig-int-garden-api/internal/domain"
)

// PaymentAmount is the deterministic charge for a submission: headcount
// times the configured per-head prices.
func PaymentAmount(adults, children int, adultPrice, childPrice float64) float64 {
	return float64(adults)*adultPrice + float64(children)*childPrice
}

// RenderConfirmationEmail substitutes submission values into the
// confirmation template. Pure text substitution: boolean flags render
// as "Yes"/"No" and the payment amount with two decimals. No
// placeholder token survives in the output.
func RenderConfirmationEmail(values domain.SubmissionValues, paymentAmount float64) string {
	replacer := strings.NewReplacer(
		"{{name}}", values.Name,
		"{{email}}", values.Email,
		"{{num_adults}}", fmt.Sprintf("%d", values.Adults),
		"{{num_kids}}", fmt.Sprintf("%d", values.Children),
		"{{notes}}", values.AnythingElse,
		"{{bell_tent}}", yesNo(values.BellTent),
		"{{payment_amount}}", fmt.Sprintf("%.2f", paymentAmount),
	)
	return replacer.Replace(confirmationTemplate)
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

const confirmationTemplate = `<!doctype html>
<html xmlns="http://www.w3.org/1999/xhtml">
<head>
<meta http-equiv="Content-Type" content="text/html; charset=UTF-8">
<meta name="viewport" content="width=device-width,initial-scale=1">
<style type="text/css">
body { margin:0; padding:0; -webkit-text-size-adjust:100%; -ms-text-size-adjust:100%; }
img { border:0; height:auto; line-height:100%; outline:none; text-decoration:none; }
p { display:block; margin:13px 0; }
</style>
</head>
<body style="word-spacing:normal;">
<div style="margin:0px auto;max-width:600px;">
<table align="center" border="0" cellpadding="0" cellspacing="0" role="presentation" style="width:100%;"><tbody><tr>
<td style="direction:ltr;font-size:0px;padding:20px 0;text-align:center;">
<div style="font-size:0px;text-align:left;direction:ltr;display:inline-block;vertical-align:top;width:100%;">
<table border="0" cellpadding="0" cellspacing="0" role="presentation" style="vertical-align:top;" width="100%"><tbody>
<tr><td align="center" style="font-size:0px;padding:10px 25px;word-break:break-word;">
<img height="auto" src="https://giginthe.garden/images/gig-logo-small.png" style="border:0;display:block;height:auto;width:100px;" width="100">
</td></tr>
<tr><td align="center" style="font-size:0px;padding:10px 25px;word-break:break-word;">
<p style="border-top:solid 4px #236150;font-size:1px;margin:0px auto;width:100%;"></p>
</td></tr>
<tr><td align="left" style="font-size:0px;padding:10px 25px;word-break:break-word;">
<div style="font-family:helvetica;font-size:20px;line-height:1;text-align:left;color:#236150;">Hey {{name}},</div>
</td></tr>
<tr><td align="left" style="font-size:0px;padding:10px 25px;word-break:break-word;">
<div style="font-family:helvetica;font-size:16px;line-height:1;text-align:left;color:#333333;">Thanks so much for signing up for Gig in the Garden! We're really excited to have you join us for a fun evening of live music, drinks, and a good time with mates.</div>
</td></tr>
<tr><td align="left" style="font-size:0px;padding:10px 25px;word-break:break-word;">
<div style="font-family:helvetica;font-size:16px;line-height:1;text-align:left;color:#333333;">Here's a quick recap of your booking details:</div>
</td></tr>
<tr><td align="left" style="font-size:0px;padding:10px 25px;word-break:break-word;">
<div style="font-family:helvetica;font-size:16px;line-height:1;text-align:left;color:#333333;"><b>Name:</b> {{name}}<br><b>Email:</b> {{email}}<br><b>Number of Adults:</b> {{num_adults}}<br><b>Number of Kids:</b> {{num_kids}}<br><b>Notes:</b> {{notes}}<br><b>Interested in Bell Tent:</b> {{bell_tent}}<br></div>
</td></tr>
<tr><td align="center" style="font-size:0px;padding:10px 25px;word-break:break-word;">
<p style="border-top:solid 4px #236150;font-size:1px;margin:0px auto;width:100%;"></p>
</td></tr>
<tr><td align="left" style="font-size:0px;padding:10px 25px;word-break:break-word;">
<div style="font-family:helvetica;font-size:16px;line-height:1;text-align:left;color:#333333;">To confirm your spot, please make sure to transfer &pound;{{payment_amount}} to the following bank details:</div>
</td></tr>
<tr><td align="left" style="font-size:0px;padding:10px 25px;word-break:break-word;">
<div style="font-family:helvetica;font-size:16px;line-height:1;text-align:left;color:#333333;"><b>Account Name:</b> Sam Smart<br><b>Sort Code:</b> 20-30-13<br><b>Account Number:</b> 13537803<br></div>
</td></tr>
<tr><td align="left" style="font-size:0px;padding:10px 25px;word-break:break-word;">
<div style="font-family:helvetica;font-size:16px;line-height:1;text-align:left;color:#333333;">We're really looking forward to seeing you there! If you have any questions or need to make changes, just give us a shout.</div>
</td></tr>
<tr><td align="left" style="font-size:0px;padding:10px 25px;word-break:break-word;">
<div style="font-family:helvetica;font-size:16px;line-height:1;text-align:left;color:#333333;">Cheers,<br>Sam &amp; David</div>
</td></tr>
</tbody></table>
</div>
</td></tr></tbody></table>
</div>
</body>
</html>
`
