package mailsmodels

import (
	"fmt"
	"quanta-backend/utils"
)

func PaymentFailed(email string, creatorName string, amount float64, currency string) {
	body := fmt.Sprintf(`
	<div style="background-color: #1B1B1B; width: 100%%; min-height: 300px; padding: 30px; box-sizing:border-box">
		<table style="background-color: #ffffff; width: 100%%; min-height: 300px;">
			<tbody>
				<tr>
					<td><h1 style="text-align:center">Your Quanta payment did not go through</h1></td>
				</tr>
				<tr>
					<td style="text-align:center; padding-bottom: 30px;">Your payment of %.2f %s for the subscription to %s failed or was cancelled. No amount was charged. You can retry from the creator's page.</td>
				</tr>
			</tbody>
		</table>
	</div>
`, amount, currency, creatorName)

	utils.SendMail(email, "Your Quanta payment did not go through", body)
}
