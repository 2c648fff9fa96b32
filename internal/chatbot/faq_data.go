package chatbot

// Entries is the support knowledge base, English first then Tagalog.
// Answers are shown verbatim in the chat widget, so they keep their
// formatting and emoji.
var Entries = []Entry{
	// --- General (English) ---
	{
		Question: "What is PCBulacan?",
		Keywords: []string{"what is pcbulacan", "about pcbulacan", "pcbulacan", "who are you"},
		Answer:   "PCBulacan is your premium PC components store offering a wide selection of computer parts, peripherals, and accessories. We provide quality products with competitive prices and reliable customer service in the Philippines! 🖥️✨",
	},
	{
		Question: "What products do you sell?",
		Keywords: []string{"products", "what do you sell", "available products", "catalog"},
		Answer:   "We sell a comprehensive range of PC components:\n• Graphics Cards (GPU) 🎮\n• Processors (CPU) ⚙️\n• Motherboards\n• RAM/Memory\n• Storage (SSD/HDD)\n• Power Supplies (PSU)\n• PC Cases\n• Cooling Systems\n• Monitors 🖥️\n• Keyboards ⌨️\n• Mice 🖱️\n• Headsets 🎧\n• Gaming Peripherals",
	},
	{
		Question: "Do you have a physical store?",
		Keywords: []string{"physical store", "store location", "visit store", "where is your store"},
		Answer:   "Yes! We have a physical store in Bulacan. You can visit us or shop online through our website for your convenience. Contact us for our exact store location and operating hours! 📍",
	},
	{
		Question: "What are your store hours?",
		Keywords: []string{"store hours", "operating hours", "open", "business hours"},
		Answer:   "Our store operates:\n📅 Monday to Saturday: 9:00 AM - 6:00 PM\n🚫 Closed on Sundays and holidays\n🌐 Shop online 24/7 on our website!",
	},
	{
		Question: "How can I contact customer support?",
		Keywords: []string{"contact", "customer support", "support", "help", "assistance"},
		Answer:   "You can reach us through:\n📧 Email: support@pcbulacan.com\n📞 Call our hotline\n💬 Use this chat for instant assistance\n\nWe respond to all inquiries within 24 hours!",
	},

	// --- General (Tagalog) ---
	{
		Question: "Ano ang PCBulacan?",
		Keywords: []string{"ano ang pcbulacan", "tungkol sa pcbulacan"},
		Answer:   "Ang PCBulacan ay isang premium PC components store na nag-aalok ng malawak na seleksyon ng computer parts, peripherals, at accessories. Nagbibigay kami ng quality products sa competitive prices at reliable customer service! 🖥️✨",
	},
	{
		Question: "Anong mga produkto ang binebenta ninyo?",
		Keywords: []string{"anong produkto", "binebenta", "mga product"},
		Answer:   "Nagbebenta kami ng kompletong PC components:\n• Graphics Cards (GPU) 🎮\n• Processors (CPU) ⚙️\n• Motherboards\n• RAM/Memory\n• Storage (SSD/HDD)\n• Power Supplies (PSU)\n• PC Cases\n• Cooling Systems\n• Monitors 🖥️\n• Keyboards ⌨️\n• Mouse 🖱️\n• Headsets 🎧\n• Gaming Peripherals",
	},
	{
		Question: "Ano ang inyong store hours?",
		Keywords: []string{"oras", "bukas ba"},
		Answer:   "Bukas ang store namin:\n📅 Monday to Saturday: 9:00 AM - 6:00 PM\n🚫 Sarado tuwing Sunday at holidays\n🌐 Pwede mag-shop online 24/7!",
	},
	{
		Question: "Paano ako makaka-contact ng customer support?",
		Keywords: []string{"paano contact", "tulong"},
		Answer:   "Pwede kayo mag-contact through:\n📧 Email: support@pcbulacan.com\n📞 Tumawag sa hotline\n💬 Gamitin ang chat na ito\n\nSumasagot kami within 24 hours!",
	},

	// --- Availability ---
	{
		Question: "Do you have RTX graphics cards in stock?",
		Keywords: []string{"rtx", "graphics card", "gpu", "stock", "available"},
		Answer:   "To check real-time stock availability for RTX or any graphics card:\n1. Visit our Products page\n2. Filter by Graphics Card category\n3. Use the search function\n\nStock levels are updated regularly! Check availability on our website. 🎮",
	},
	{
		Question: "What brands do you carry?",
		Keywords: []string{"brands", "what brands", "available brands", "anong brand"},
		Answer:   "We carry top brands:\n🎮 GPU: NVIDIA, AMD\n⚙️ CPU: Intel, AMD\n🔧 Components: ASUS, MSI, Gigabyte, Corsair, G.Skill\n💾 Storage: Samsung, Western Digital, Seagate\n🎨 Peripherals: Razer, Logitech, HyperX, Cooler Master\n\nAnd many more premium brands!",
	},
	{
		Question: "Do you sell gaming laptops?",
		Keywords: []string{"gaming laptop", "laptop", "pre-built"},
		Answer:   "Currently, we specialize in PC components and peripherals for building custom PCs. We don't carry pre-built systems or laptops, but we can help you build the perfect gaming PC! 🎮💪",
	},
	{
		Question: "Do you have RGB components?",
		Keywords: []string{"rgb", "rgb components", "lighting"},
		Answer:   "Absolutely! We have RGB components:\n✨ RGB RAM\n✨ RGB Fans\n✨ RGB CPU Coolers\n✨ RGB Cases\n✨ RGB Keyboards\n✨ RGB Mice\n\nBrowse our products and filter by 'RGB'! 🌈",
	},

	// --- Ordering & payment ---
	{
		Question: "How do I place an order?",
		Keywords: []string{"place order", "how to order", "ordering process", "paano mag-order"},
		Answer:   "To place an order:\n1️⃣ Create account or login\n2️⃣ Browse products and add to cart 🛒\n3️⃣ Go to checkout\n4️⃣ Enter shipping address 📍\n5️⃣ Choose payment method (COD/GCash/PayMaya) 💳\n6️⃣ Submit order ✅\n\nYou'll receive confirmation via email!",
	},
	{
		Question: "What payment methods do you accept?",
		Keywords: []string{"payment method", "payment", "how to pay", "paano magbayad", "bayad"},
		Answer:   "We accept:\n💵 Cash on Delivery (COD)\n💳 GCash\n📱 PayMaya\n\nChoose your preferred method at checkout and we'll process your order immediately!",
	},
	{
		Question: "Do you accept Cash on Delivery (COD)?",
		Keywords: []string{"cod", "cash on delivery", "pay on delivery"},
		Answer:   "Yes! Cash on Delivery is available nationwide. Pay the courier when your order arrives. You can also pay ahead with GCash or PayMaya for faster processing! 🔒",
	},
	{
		Question: "Can I cancel my order?",
		Keywords: []string{"cancel order", "cancel", "i-cancel", "refund"},
		Answer:   "Yes! You can cancel if:\n✅ Status is 'Pending'\n❌ Cannot cancel once 'Processing' or 'Shipped'\n\nGo to My Orders and tap Cancel, or contact us immediately. We'll process it right away!",
	},
	{
		Question: "Do you offer installment plans?",
		Keywords: []string{"installment", "payment plan", "hulugan"},
		Answer:   "Currently, we accept full payment only. We're exploring installment payment options for the future. Stay tuned for updates! 📢",
	},

	// --- Shipping & delivery ---
	{
		Question: "How much is the shipping fee?",
		Keywords: []string{"shipping fee", "delivery fee", "how much shipping", "magkano shipping", "magkano ang delivery"},
		Dynamic:  DynamicShippingFees,
		Answer:   "Shipping fees vary by location! During checkout:\n1. Enter your complete address\n2. Shipping fee will be calculated automatically\n3. Based on your province/city\n\nFees are competitive and transparent! 📦✨",
	},
	{
		Question: "Do you ship nationwide?",
		Keywords: []string{"nationwide", "ship nationwide", "deliver nationwide", "buong pilipinas"},
		Answer:   "Yes! We ship to all provinces in the Philippines! 🇵🇭\n\n📍 Luzon ✅\n📍 Visayas ✅\n📍 Mindanao ✅\n\nShipping fees calculated based on location. We use reliable courier services!",
	},
	{
		Question: "How long is the delivery time?",
		Keywords: []string{"delivery time", "how long delivery", "shipping time", "gaano katagal"},
		Answer:   "Delivery time by location:\n📍 Metro Manila: 2-3 days\n📍 Luzon: 3-5 days\n📍 Visayas: 4-6 days\n📍 Mindanao: 5-7 days\n\nTracking information provided once shipped! 📦",
	},
	{
		Question: "Can I track my order?",
		Keywords: []string{"track order", "tracking", "where is my order", "i-track", "nasaan ang order"},
		Answer:   "Yes! Track your order:\n1. Check email for updates once shipped 📧\n2. Login to your account\n3. View order history\n4. See real-time status\n\nFull transparency!",
	},
	{
		Question: "What courier do you use?",
		Keywords: []string{"courier", "shipping company", "delivery company"},
		Answer:   "We partner with reliable couriers:\n📦 J&T Express\n📦 LBC\n📦 Other trusted logistics providers\n\nEnsuring safe and timely delivery!",
	},
	{
		Question: "What if my package is damaged?",
		Keywords: []string{"damaged", "broken", "damaged package", "sira", "nasira"},
		Answer:   "We pack all items securely! But if damaged:\n1. Contact us immediately 📞\n2. Send photos within 24 hours 📸\n3. We'll arrange replacement or refund\n\nYour satisfaction is our priority! 🛡️",
	},

	// --- Account & returns ---
	{
		Question: "How do I create an account?",
		Keywords: []string{"create account", "sign up", "register", "gumawa ng account"},
		Answer:   "Create your account:\n1. Click 'Sign Up' (top right)\n2. Enter name, email, password\n3. Login and you're ready!\n\nStart shopping! 🛒",
	},
	{
		Question: "I forgot my password",
		Keywords: []string{"forgot password", "reset password", "can't login", "nakalimutan password"},
		Answer:   "Reset your password:\n1. Click 'Forgot Password' on login page\n2. Enter registered email\n3. Check inbox (and spam folder) for the 6-digit code 📧\n4. Enter the code within 10 minutes\n5. Create new password\n\nDone!",
	},
	{
		Question: "Can I change my shipping address?",
		Keywords: []string{"change address", "shipping address", "delivery address", "palitan address"},
		Answer:   "Yes! Manage addresses:\n1. Go to Account Settings ⚙️\n2. Add/Edit addresses\n3. Save multiple addresses\n4. Select during checkout\n\nEasy address management!",
	},
	{
		Question: "What is your return policy?",
		Keywords: []string{"return policy", "returns", "return product", "ibalik"},
		Answer:   "Return Policy:\n✅ 7 days from delivery\n✅ Defective items or wrong products\n✅ Unused, original packaging\n\nContact us to initiate return. We'll guide you through the process! 🔄",
	},
	{
		Question: "Do you offer warranty?",
		Keywords: []string{"warranty", "guarantee", "garantiya"},
		Answer:   "Yes! All products have manufacturer warranty:\n🛡️ 1-3 years (varies by product)\n📋 Keep receipt and packaging\n✅ Brand new and authentic\n\nYour purchase is protected!",
	},

	// --- PC building ---
	{
		Question: "Can you help me build a PC?",
		Keywords: []string{"build pc", "help build", "pc build", "custom pc", "mag-build pc"},
		Answer:   "Absolutely! We can help you build a PC! 🖥️\n\nTell us:\n💰 Your budget\n🎮 Purpose (gaming, streaming, work)\n📊 Target resolution (1080p, 1440p, 4K)\n\nWe'll make sure all components are compatible! 💪",
	},
	{
		Question: "What GPU is best for gaming?",
		Keywords: []string{"best gpu", "graphics card gaming", "gpu for gaming", "magandang gpu"},
		Answer:   "Best GPU by resolution:\n\n🎮 **1080p Gaming:**\n• RTX 4060 / RX 7600\n\n🎮 **1440p Gaming:**\n• RTX 4070 / RX 7800 XT\n\n🎮 **4K Gaming:**\n• RTX 4080 / RTX 4090\n\nCheck our Graphics Card section for availability and prices! 🚀",
	},
	{
		Question: "How much RAM do I need?",
		Keywords: []string{"how much ram", "ram need", "memory", "gaano karaming ram"},
		Answer:   "RAM requirements:\n\n🎮 **Gaming:** 16GB DDR4/DDR5\n💼 **Work/Multitasking:** 16-32GB\n🎬 **Content Creation:** 32GB+\n🏢 **Professional Workstation:** 64GB+\n\nCheck compatibility with your motherboard! Make sure same speed and type (DDR4/DDR5)! 💾",
	},
	{
		Question: "What's better, AMD or Intel?",
		Keywords: []string{"amd or intel", "amd vs intel", "better cpu", "amd o intel"},
		Answer:   "AMD vs Intel:\n\n💰 **AMD Ryzen:**\n• Better value for money\n• Excellent multi-core performance\n\n🎮 **Intel:**\n• Slightly better gaming performance\n• Strong single-core speed\n\nBoth are excellent! Choose based on budget and needs. We carry both brands! ⚙️",
	},
	{
		Question: "Do I need a high-end PSU?",
		Keywords: []string{"psu", "power supply", "high-end psu"},
		Answer:   "PSU is CRUCIAL! Never cheap out! ⚡\n\n**Recommendations:**\n🥉 Minimum: 80+ Bronze\n🥈 Recommended: 80+ Gold\n🥇 High-end builds: 80+ Platinum/Titanium\n\n**Wattage calculation:**\nGPU + CPU + 20% headroom\n\nProtect your investment! 🛡️",
	},
	{
		Question: "Should I get air or liquid cooling?",
		Keywords: []string{"cooling", "air cooling", "liquid cooling", "aio"},
		Answer:   "Cooling comparison:\n\n❄️ **Air Cooling:**\n✅ Reliable, no leaks\n✅ Lower maintenance\n✅ Budget-friendly\n\n💧 **Liquid/AIO Cooling:**\n✅ Better aesthetics\n✅ Better temps (high-end)\n⚠️ More expensive\n\nFor most builds, a good air cooler is enough! We have both options! 🌬️",
	},
	{
		Question: "What storage should I get?",
		Keywords: []string{"storage", "ssd", "hdd", "nvme", "anong storage"},
		Answer:   "Storage guide:\n\n⚡ **NVMe SSD (Fastest):**\n• OS and programs: 500GB-1TB\n\n💾 **SATA SSD:**\n• Good for games\n\n🗄️ **HDD:**\n• Mass storage, backups, 2-4TB\n\n**Recommended setup:**\n500GB NVMe (OS) + 1-2TB SSD (Games) + 2TB HDD (Storage)\n\nWe have all types! 📦",
	},
}

// DefaultReply is shown when no FAQ entry matches.
const DefaultReply = "I'm here to help you with PCBulacan! 😊\n\nI can answer questions about:\n\n💻 **Products & Availability**\n• Graphics Cards, CPUs, RAM, Storage\n• Stock availability and prices\n\n🛒 **Ordering & Payment**\n• How to place orders\n• Payment methods (COD, GCash, PayMaya)\n• Order cancellation\n\n📦 **Shipping & Delivery**\n• Shipping fees and delivery time\n• Order tracking\n• Nationwide shipping\n\n👤 **Account & Support**\n• Creating account\n• Password reset\n• Return policy and warranty\n\n🔧 **PC Building Help**\n• Component recommendations\n• Compatibility questions\n\n**Ask me anything! I'm here 24/7!** 🚀\n\n---\n\nNandito ako para tumulong! 😊\n\nPwede kayo magtanong tungkol sa:\n\n💻 **Mga Produkto**\n🛒 **Pag-order at Bayad**\n📦 **Shipping at Delivery**\n👤 **Account at Support**\n🔧 **PC Building**\n\n**Magtanong lang! Andito ako 24/7!** 🚀"
