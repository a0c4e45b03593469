package mailsmodels

import (
	"fmt"
	"quanta-backend/utils"
)

func PaymentSuccess(email string, creatorName string, amount float64, currency string) {
	body := fmt.Sprintf(`
	<div style="background-color: #1B1B1B; width: 100%%; min-height: 300px; padding: 30px; box-sizing:border-box">
		<table style="background-color: #ffffff; width: 100%%; min-height: 300px;">
			<tbody>
				<tr>
					<td><h1 style="text-align:center">Your Quanta subscription is active</h1></td>
				</tr>
				<tr>
					<td style="text-align:center; padding-bottom: 30px;">Your payment of %.2f %s was confirmed. You now have access to the premium content of %s.</td>
				</tr>
			</tbody>
		</table>
	</div>
`, amount, currency, creatorName)

	utils.SendMail(email, "Your Quanta subscription is active", body)
}
