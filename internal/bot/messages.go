package bot

import "fmt"

// 机器人发出的全部阿拉伯语文案。条款和使用说明可被设置表覆盖，
// 其余为固定模板。

const msgTerms = `📋 شروط وأحكام مجموعة ريدز

🎥 مجموعة تبادل الفيديوهات والريدز
📱 شارك فيديوهاتك واستمتع بمحتوى الآخرين

📝 الشروط والأحكام:
• حد أقصى 3 فيديوهات يومياً لكل عضو
• يجب التفاعل مع فيديوهات الأعضاء الآخرين
• عدم مشاركة محتوى مسيء أو غير لائق
• احترام جميع أعضاء المجموعة
• البوت في سبات من 12:00 ليلاً - 7:00 صباحاً
• عدم الإزعاج أو الرسائل العشوائية

⚠️ مخالفة الشروط قد تؤدي لإيقاف العضوية

هل توافق على هذه الشروط؟

✅ أرسل "موافق" أو "أوافق" أو "نعم" للموافقة
❌ أرسل "لا" أو "رفض" للرفض`

const msgInstructions = `📝 تعليمات المجموعة:

🎥 شارك فيديوهات ريدز مثيرة للاهتمام
📊 حد أقصى 3 فيديوهات يومياً لكل عضو
❤️ تفاعل مع فيديوهات الأعضاء الآخرين
🌙 البوت في سبات من 12:00 ليلاً - 7:00 صباحاً

🔗 الروابط المقبولة فقط:
• https://redzapp.app.link/
• https://thexapp.app.link/
❌ لا نقبل روابط من منصات أخرى

📱 الأوامر المتاحة:
• إرسال رابط ريدز لمشاركته
• "احصائيات" لعرض إحصائياتك
• "مساعدة" لعرض هذه التعليمات

⚡ استجابة فورية 24/7 (عدا فترة السبات)`

const msgSleepMode = "😴 البوت في حالة سبات من الساعة 12:00 ليلاً حتى الساعة 7:00 صباحاً\n\n" +
	"يرجى المحاولة مرة أخرى في الصباح لتجنب إزعاج الأعضاء الآخرين."

const msgSuspended = "عذراً، تم إيقاف عضويتك مؤقتاً. تواصل مع الإدارة للمساعدة."

const msgConsentReceived = "✅ شكراً لك على الموافقة على الشروط!\n\n" +
	"⏳ تم إرسال طلبك للإدارة للموافقة النهائية. سيتم إشعارك عند قبول طلبك."

const msgAwaitingApproval = "⏳ طلبك قيد المراجعة من الإدارة. يرجى الانتظار."

const msgDeclined = `شكراً لك. يمكنك العودة والانضمام في أي وقت بكتابة "ريدز" أو "REDZ".`

const msgForeignLink = "❌ عذراً، نقبل فقط روابط ريدز!\n\n" +
	"✅ يرجى إرسال روابط تبدأ بـ:\n" +
	"• https://redzapp.app.link/\n" +
	"• https://thexapp.app.link/\n\n" +
	"🚫 لا نقبل روابط من منصات أخرى"

const msgNotUnderstood = "لم أفهم رسالتك 🤔\n\nأرسل \"مساعدة\" لإرسال لك المساعدة"

const msgSubmissionError = "حدث خطأ أثناء معالجة الفيديو. يرجى المحاولة مرة أخرى."

const msgApproved = `🎉 مبروك! تم قبولك في مجموعة ريدز

✅ تم تفعيل عضويتك بنجاح
🎥 يمكنك الآن مشاركة الفيديوهات
📊 حد أقصى 3 فيديوهات يومياً

أرسل "مساعدة" للحصول على التعليمات الكاملة`

func msgDailyLimitReached(limit int) string {
	return fmt.Sprintf("تم الوصول للحد الأقصى اليومي (%d فيديوهات). جرب غداً! 🎥", limit)
}

func msgSubmissionConfirmed(todayCount, limit int) string {
	return fmt.Sprintf("✅ تم استلام الفيديو وإرساله لجميع الأعضاء!\n\n📊 فيديوهاتك اليوم: %d/%d", todayCount, limit)
}

func msgDistributedVideo(senderNickname, url string) string {
	return fmt.Sprintf("🎥 فيديو من %s\n\n%s\n\nعليك التفاعل مع الرابط", senderNickname, url)
}

func msgStats(totalVideos, totalInteractions, engagementRate, todayVideos, limit int) string {
	return fmt.Sprintf("📊 إحصائياتك:\n\n"+
		"🎥 إجمالي الفيديوهات: %d\n"+
		"❤️ إجمالي التفاعلات: %d\n"+
		"📈 معدل التفاعل: %d%%\n"+
		"📅 فيديوهات اليوم: %d/%d",
		totalVideos, totalInteractions, engagementRate, todayVideos, limit)
}

func msgAdminJoinRequest(nickname, phone, when string) string {
	return fmt.Sprintf("🔔 طلب انضمام جديد\n\n"+
		"👤 العضو: %s\n"+
		"📱 الرقم: %s\n"+
		"⏰ الوقت: %s\n\n"+
		"الحالة: في انتظار موافقة الإدارة\n\n"+
		"للموافقة على العضو، يرجى الدخول إلى لوحة التحكم.", nickname, phone, when)
}

func msgRejected(reason string) string {
	body := "❌ نأسف لإبلاغك بأنه لم يتم قبولك في مجموعة ريدز\n\n"
	if reason != "" {
		body += "السبب: " + reason + "\n\n"
	}
	return body + `يمكنك المحاولة مرة أخرى لاحقاً بكتابة "ريدز" أو "REDZ"`
}

const msgInactivityWarning = "⚠️ لاحظنا قلة تفاعلك مؤخراً\n\n" +
	"يرجى التفاعل مع فيديوهات الأعضاء للحفاظ على عضويتك."

const msgRemovedForInactivity = "تم إيقاف عضويتك بسبب عدم التفاعل.\n\n" +
	`يمكنك العودة في أي وقت بكتابة "ريدز" أو "REDZ".`
