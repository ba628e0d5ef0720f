package strategy

// knowledgeWithContextTemplate 占位符 {context}
const knowledgeWithContextTemplate = "我找到了一些相关的知识信息，供你参考：\n\n{context}\n\n希望这些信息对你有帮助。如果你有更多问题，欢迎继续问我。"

const knowledgeMenu = "这是一个很好的问题。关于心理健康，我可以分享一些专业的知识。\n\n" +
	"你具体想了解哪个方面呢？比如：\n" +
	"- 压力管理技巧\n" +
	"- 情绪调节方法\n" +
	"- 焦虑/抑郁的应对方式\n" +
	"- 心理疗愈技术\n\n" +
	"请告诉我你想了解的内容，我会尽力帮助你。"

const empathyFallback = "谢谢你愿意告诉我这些。我在这里倾听你。\n\n" +
	"如果你愿意，可以多说说你的想法和感受。\n" +
	"或者，如果你需要一些帮助，我也可以提供一些情绪调节的小技巧。"

const helpMenu = "我很理解你现在可能感到困难。\n\n" +
	"首先，我想告诉你，能够寻求帮助是勇敢的第一步。\n\n" +
	"我可以帮助你的是：\n" +
	"1. 陪你聊聊，倾听你的心声\n" +
	"2. 提供一些缓解情绪的技巧\n" +
	"3. 如果你需要，可以帮你做一下心理状态评估\n" +
	"4. 告诉你一些专业的求助渠道\n\n" +
	"你现在最想获得什么样的帮助呢？"

const mindfulnessScript = "当然可以！让我带你进行一次简单的正念练习。\n\n" +
	"【5分钟正念呼吸练习】\n\n" +
	"1. 找一个安静的地方，坐下来或躺下来\n" +
	"2. 闭上眼睛，慢慢地深呼吸\n" +
	"3. 关注你的呼吸，感受空气从鼻子进入，再从嘴巴呼出\n" +
	"4. 如果走神了，没关系，轻轻地把注意力带回呼吸\n" +
	"5. 继续这样深呼吸5分钟\n\n" +
	"完成后，慢慢睁开眼睛。\n\n" +
	"你感觉怎么样？"

const breathingScript = "好的，让我们做一个放松练习。\n\n" +
	"【4-7-8 呼吸法】\n\n" +
	"1. 用鼻子吸气，数4下（1、2、3、4）\n" +
	"2. 屏住呼吸，数7下（1、2、3、4、5、6、7）\n" +
	"3. 用嘴巴慢慢呼气，数8下（1、2、3、4、5、6、7、8）\n" +
	"4. 重复这个过程3-4次\n\n" +
	"这个方法可以帮助你平静下来。\n\n" +
	"做完后告诉我感觉如何？"

const cbtScript = "好的，让我们做一个简单的CBT练习。\n\n" +
	"【思维记录表】\n\n" +
	"当你有负面情绪时，试着记录：\n\n" +
	"1. **情境**：发生了什么？\n" +
	"2. **想法**：你当时在想什么？\n" +
	"3. **情绪**：你感受到什么情绪？（1-10分）\n" +
	"4. **证据**：支持这个想法的证据是什么？\n" +
	"5. **反证**：有什么证据其实不支持这个想法？\n" +
	"6. **新的想法**：更平衡的想法是什么？\n" +
	"7. **新的情绪**：现在情绪几分？\n\n" +
	"你可以试着用这个方法记录一下。\n" +
	"需要我陪你一起做吗？"

const emotionThermometerScript = "好的，我们来用情绪温度计记录一下此刻的情绪。\n\n" +
	"【情绪温度计】\n\n" +
	"1. 给现在的情绪起个名字（比如焦虑、难过、生气、平静）\n" +
	"2. 用0-10分给它的强度打分，0分是完全平静，10分是非常强烈\n" +
	"3. 写下让这个情绪升温的事情或想法\n" +
	"4. 留意身体的感觉，比如胸口发紧、肩膀僵硬\n" +
	"5. 选一个能让温度降一点的小行动，做完后再打一次分\n\n" +
	"每天记录一次，慢慢就能看清自己的情绪模式。\n\n" +
	"你现在的情绪温度是几分？"

const practiceMenu = "我可以引导你进行一些心理练习。\n\n" +
	"你希望尝试哪种类型的练习？\n" +
	"1. 正念冥想 - 帮助平静心绪\n" +
	"2. 呼吸放松 - 缓解紧张焦虑\n" +
	"3. CBT练习 - 改变负性思维\n" +
	"4. 情绪记录 - 了解自己的情绪模式\n\n" +
	"请告诉我你的选择。"

const generalFallback = "我在这里倾听你。\n\n" +
	"你可以告诉我：\n" +
	"- 你的感受和想法\n" +
	"- 困惑你的问题\n" +
	"- 想要了解的心理知识\n" +
	"- 需要帮助的方面\n\n" +
	"我会尽力帮助你。"
